package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/NouranFoda/CMPN205-Graphics-Project/gpu"
	"github.com/NouranFoda/CMPN205-Graphics-Project/internal/log"
)

// program tracks the uniform locations looked up so far.
type program struct {
	handle    uint32
	locations map[string]int32
}

func (p *program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.handle, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

func (d *Device) CreateProgram(name string, src gpu.ShaderSource) (*gpu.Program, error) {
	handle, err := newProgram(src.Vertex, src.Fragment)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", name, err)
	}
	for attr, loc := range map[string]uint32{
		"position":  gpu.AttribPosition,
		"color":     gpu.AttribColor,
		"tex_coord": gpu.AttribTexCoord,
		"normal":    gpu.AttribNormal,
	} {
		if got := gl.GetAttribLocation(handle, gl.Str(attr+"\x00")); got >= 0 && uint32(got) != loc {
			d.logger.Warn("attribute location mismatch",
				log.String("program", name), log.String("attribute", attr), log.Int("location", int(got)))
		}
	}
	d.programs[handle] = &program{handle: handle, locations: map[string]int32{}}
	return &gpu.Program{Name: name, Handle: handle}, nil
}

func (d *Device) DeleteProgram(p *gpu.Program) {
	if p == nil || p.Handle == 0 {
		return
	}
	if d.current != nil && d.current.handle == p.Handle {
		gl.UseProgram(0)
		d.current = nil
	}
	gl.DeleteProgram(p.Handle)
	delete(d.programs, p.Handle)
	p.Handle = 0
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	defer gl.DeleteShader(vert)
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}
	defer gl.DeleteShader(frag)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		msg := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(msg))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %s", strings.TrimRight(msg, "\x00"))
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		msg := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(msg))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %s", strings.TrimRight(msg, "\x00"))
	}
	return shader, nil
}
