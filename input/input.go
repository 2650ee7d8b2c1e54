// The input package provides the keyboard and mouse state of the current frame,
// like key clicks and releases, held buttons and mouse motion.
//
// Window backends translate their native events into calls to the Handle* functions
// while polling, and EventLoopStart must be called once per frame before polling so
// that 'this frame' state is cleared. Keys and buttons use this package's own enums so
// game code doesn't depend on the windowing library in use.
package input

type Key int32

const (
	Key_Unknown Key = iota
	Key_Escape
	Key_Space
	Key_Enter
	Key_LeftShift
	Key_RightShift
	Key_LeftCtrl
	Key_RightCtrl
	Key_Up
	Key_Down
	Key_Left
	Key_Right
	Key_W
	Key_A
	Key_S
	Key_D
	Key_Q
	Key_E
)

func (k Key) String() string {
	switch k {
	case Key_Escape:
		return "Escape"
	case Key_Space:
		return "Space"
	case Key_Enter:
		return "Enter"
	case Key_LeftShift:
		return "LeftShift"
	case Key_RightShift:
		return "RightShift"
	case Key_LeftCtrl:
		return "LeftCtrl"
	case Key_RightCtrl:
		return "RightCtrl"
	case Key_Up:
		return "Up"
	case Key_Down:
		return "Down"
	case Key_Left:
		return "Left"
	case Key_Right:
		return "Right"
	case Key_W:
		return "W"
	case Key_A:
		return "A"
	case Key_S:
		return "S"
	case Key_D:
		return "D"
	case Key_Q:
		return "Q"
	case Key_E:
		return "E"
	default:
		return "Unknown"
	}
}

type MouseButton int32

const (
	MouseButton_Unknown MouseButton = iota
	MouseButton_Left
	MouseButton_Middle
	MouseButton_Right
)

type keyState struct {
	Key                 Key
	IsDown              bool
	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

type mouseBtnState struct {
	Btn    MouseButton
	IsDown bool

	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
	IsDoubleClicked     bool
}

type mouseMotionState struct {
	XDelta int32
	YDelta int32
	XPos   int32
	YPos   int32
}

type mouseWheelState struct {
	XDelta int32
	YDelta int32
}

var (
	mouseWheel  = mouseWheelState{}
	mouseMotion = mouseMotionState{}
	mouseBtnMap = make(map[MouseButton]mouseBtnState)
	keyMap      = make(map[Key]keyState)

	isQuitRequested bool
)

func EventLoopStart() {

	// Update per-frame state
	for k, v := range keyMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		keyMap[k] = v
	}

	for k, v := range mouseBtnMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		v.IsDoubleClicked = false
		mouseBtnMap[k] = v
	}

	mouseMotion.XDelta = 0
	mouseMotion.YDelta = 0

	mouseWheel.XDelta = 0
	mouseWheel.YDelta = 0

	isQuitRequested = false
}

func ClearKeyboardState() {
	clear(keyMap)
}

func ClearMouseState() {
	clear(mouseBtnMap)
	mouseMotion = mouseMotionState{}
	mouseWheel = mouseWheelState{}
}

func HandleQuitEvent() {
	isQuitRequested = true
}

func IsQuitClicked() bool {
	return isQuitRequested
}

// HandleKeyEvent records a key going down or up. Repeats generated by holding a key
// don't count as presses.
func HandleKeyEvent(k Key, isDown, isRepeat bool) {

	if k == Key_Unknown {
		return
	}

	ks, ok := keyMap[k]
	if !ok {
		ks = keyState{Key: k}
	}

	ks.IsDown = isDown
	ks.IsPressedThisFrame = isDown && !isRepeat
	ks.IsReleasedThisFrame = !isDown && !isRepeat

	keyMap[k] = ks
}

func HandleMouseBtnEvent(btn MouseButton, isDown bool, clicks int) {

	if btn == MouseButton_Unknown {
		return
	}

	mb, ok := mouseBtnMap[btn]
	if !ok {
		mb = mouseBtnState{Btn: btn}
	}

	mb.IsDown = isDown
	mb.IsDoubleClicked = clicks == 2 && isDown
	mb.IsPressedThisFrame = isDown
	mb.IsReleasedThisFrame = !isDown

	mouseBtnMap[btn] = mb
}

// HandleMouseMotionEvent records the cursor position and adds to this frame's motion,
// since some backends report several motion events per frame.
func HandleMouseMotionEvent(x, y, xRel, yRel int32) {

	mouseMotion.XPos = x
	mouseMotion.YPos = y

	mouseMotion.XDelta += xRel
	mouseMotion.YDelta += yRel
}

func HandleMouseWheelEvent(xDelta, yDelta int32) {
	mouseWheel.XDelta += xDelta
	mouseWheel.YDelta += yDelta
}

// GetMousePos returns the window coordinates of the mouse
func GetMousePos() (x, y int32) {
	return mouseMotion.XPos, mouseMotion.YPos
}

// GetMouseMotion returns how many pixels were moved this frame
func GetMouseMotion() (xDelta, yDelta int32) {
	return mouseMotion.XDelta, mouseMotion.YDelta
}

func GetMouseWheelMotion() (xDelta, yDelta int32) {
	return mouseWheel.XDelta, mouseWheel.YDelta
}

// GetMouseWheelYNorm returns 1 if mouse wheel yDelta > 0, -1 if yDelta < 0, and 0 otherwise
func GetMouseWheelYNorm() int32 {

	if mouseWheel.YDelta > 0 {
		return 1
	} else if mouseWheel.YDelta < 0 {
		return -1
	}

	return 0
}

func KeyClicked(k Key) bool {
	return keyMap[k].IsPressedThisFrame
}

func KeyReleased(k Key) bool {
	return keyMap[k].IsReleasedThisFrame
}

func KeyDown(k Key) bool {
	return keyMap[k].IsDown
}

func KeyUp(k Key) bool {
	return !keyMap[k].IsDown
}

func MouseClicked(mb MouseButton) bool {
	return mouseBtnMap[mb].IsPressedThisFrame
}

func MouseDoubleClicked(mb MouseButton) bool {
	return mouseBtnMap[mb].IsDoubleClicked
}

func MouseReleased(mb MouseButton) bool {
	return mouseBtnMap[mb].IsReleasedThisFrame
}

func MouseDown(mb MouseButton) bool {
	return mouseBtnMap[mb].IsDown
}

func MouseUp(mb MouseButton) bool {
	return !mouseBtnMap[mb].IsDown
}
