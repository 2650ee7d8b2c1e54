//go:build sdl

// Building this package needs the SDL2 development libraries, run with: go test -tags sdl ./window/sdlwin
package sdlwin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/telrender/tel/input"
	"github.com/veandco/go-sdl2/sdl"
)

func TestKeyFromSdl(t *testing.T) {
	assert.Equal(t, input.Key_Escape, keyFromSdl(sdl.K_ESCAPE))
	assert.Equal(t, input.Key_W, keyFromSdl(sdl.K_w))
	assert.Equal(t, input.Key_LeftShift, keyFromSdl(sdl.K_LSHIFT))
	assert.Equal(t, input.Key_Unknown, keyFromSdl(sdl.K_F12))
}

func TestMouseBtnFromSdl(t *testing.T) {
	assert.Equal(t, input.MouseButton_Left, mouseBtnFromSdl(sdl.BUTTON_LEFT))
	assert.Equal(t, input.MouseButton_Right, mouseBtnFromSdl(sdl.BUTTON_RIGHT))
	assert.Equal(t, input.MouseButton_Unknown, mouseBtnFromSdl(sdl.BUTTON_X1))
}
