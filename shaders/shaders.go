package shaders

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/telrender/tel/gpu"
	"github.com/telrender/tel/logging"
)

// CompileError is returned when a stage fails to compile or a program fails to link.
// Log is the driver's full diagnostic.
type CompileError struct {
	Stage ShaderType
	Log   string
}

func (e *CompileError) Error() string {

	log := strings.TrimSpace(e.Log)
	if log == "" {
		log = "driver returned no log"
	}

	if e.Stage == ShaderType_Program {
		return "failed to link shader program. Log: " + log
	}

	return fmt.Sprintf("failed to compile %s shader. Log: %s", e.Stage, log)
}

type Shader struct {
	drv  gpu.Driver
	Id   uint32
	Type ShaderType
}

func (s *Shader) Delete() {

	if s.Id == 0 {
		return
	}

	s.drv.DeleteShader(s.Id)
	s.Id = 0
}

// CompileShader creates and compiles one stage. On failure the shader object is deleted
// and a *CompileError is returned.
func CompileShader(drv gpu.Driver, shaderType ShaderType, src string) (Shader, error) {

	shaderId := drv.CreateShader(shaderType.ToGl())
	if shaderId == 0 {
		return Shader{}, fmt.Errorf("failed to create OpenGL %s shader", shaderType)
	}

	drv.ShaderSource(shaderId, src)
	drv.CompileShader(shaderId)

	if !drv.ShaderCompileStatus(shaderId) {

		errMsg := drv.ShaderInfoLog(shaderId)
		logging.ErrLog.Println("Compilation of shader with id", shaderId, "failed. Err:", errMsg)

		drv.DeleteShader(shaderId)
		return Shader{}, &CompileError{Stage: shaderType, Log: errMsg}
	}

	return Shader{drv: drv, Id: shaderId, Type: shaderType}, nil
}

// ReadCombinedShader loads a combined shader file, see SplitCombinedSource
func ReadCombinedShader(shaderPath string) (vertSrc, fragSrc string, err error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		logging.ErrLog.Println("Failed to read shader. Err:", err)
		return "", "", err
	}

	return SplitCombinedSource(combinedSource)
}

// SplitCombinedSource splits a single file holding both stages. Each stage starts with a
// marker line, '//shader:vertex' or '//shader:fragment', and runs until the next marker.
func SplitCombinedSource(shaderSrc []byte) (vertSrc, fragSrc string, err error) {

	shaderSources := bytes.Split(shaderSrc, []byte("//shader:"))
	if len(shaderSources) < 2 {
		return "", "", errors.New("failed to read combined shader. The minimum shader types to have are '//shader:vertex' and '//shader:fragment'")
	}

	var hasVert, hasFrag bool
	for i := 0; i < len(shaderSources); i++ {

		src := shaderSources[i]

		// This can happen when the shader type is at the start of the file
		if len(bytes.TrimSpace(src)) == 0 {
			continue
		}

		// Text before the first marker
		if i == 0 {
			return "", "", errors.New("found source before the first '//shader:' marker")
		}

		if hasStageName(src, "vertex") {

			if hasVert {
				return "", "", errors.New("more than one '//shader:vertex' found")
			}

			vertSrc = string(src[len("vertex"):])
			hasVert = true

		} else if hasStageName(src, "fragment") {

			if hasFrag {
				return "", "", errors.New("more than one '//shader:fragment' found")
			}

			fragSrc = string(src[len("fragment"):])
			hasFrag = true

		} else {
			return "", "", errors.New("unknown shader type. Must be '//shader:vertex' or '//shader:fragment'")
		}
	}

	if !hasVert {
		return "", "", errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	}

	if !hasFrag {
		return "", "", errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
	}

	return vertSrc, fragSrc, nil
}

// hasStageName reports whether a marker's text is exactly stage, followed by whitespace or the end of the file
func hasStageName(src []byte, stage string) bool {

	if !bytes.HasPrefix(src, []byte(stage)) {
		return false
	}

	rest := src[len(stage):]
	return len(rest) == 0 || unicode.IsSpace(rune(rest[0]))
}
