package ui

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/nevisdale/em6502/internal/display"
	"github.com/nevisdale/em6502/internal/machine"
)

// Tab - show debug info
// P - pause
// R - one step and stop
// D - dump registers to the log

type UI struct {
	m      *machine.Machine
	logger *log.Logger

	frame  *image.RGBA
	screen *ebiten.Image

	showDebugInfo bool
	err           error
}

func New(m *machine.Machine, logger *log.Logger) *UI {
	if logger == nil {
		logger = log.Default()
	}
	return &UI{
		m:             m,
		logger:        logger,
		frame:         display.NewImage(),
		screen:        ebiten.NewImage(display.Width, display.Height),
		showDebugInfo: true,
	}
}

// Err is the error that stopped the machine, if any.
func (ui *UI) Err() error {
	return ui.err
}

func (ui *UI) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		ui.showDebugInfo = !ui.showDebugInfo
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		ui.m.TogglePause()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		ui.m.OneStepAndStop()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		ui.logger.Printf("state dump\n%s", ui.m.DebugInfo())
	}

	if err := ui.m.RunFrame(); err != nil && ui.err == nil {
		// keep the window open so the final state can be inspected
		ui.err = err
		ui.logger.Printf("%v\n%s", err, ui.m.DebugInfo())
	}
	return nil
}

func (ui *UI) Draw(screen *ebiten.Image) {
	display.Draw(ui.frame, ui.m.Frame())
	ui.screen.WritePixels(ui.frame.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(gameScreenScale, gameScreenScale)
	screen.DrawImage(ui.screen, op)

	if !ui.showDebugInfo {
		return
	}

	info := ui.m.DebugInfo()
	var infoStr strings.Builder
	fmt.Fprintf(&infoStr, " FPS: %0.0f\n", ebiten.ActualFPS())
	fmt.Fprintf(&infoStr, " STATUS: %s\n", info.StatusString())
	fmt.Fprintf(&infoStr, " PC: %04X\n", info.PC)
	fmt.Fprintf(&infoStr, " A: $%02X [%03d]", info.A, info.A)
	fmt.Fprintf(&infoStr, " X: $%02X [%03d]", info.X, info.X)
	fmt.Fprintf(&infoStr, " Y: $%02X [%03d]\n", info.Y, info.Y)
	fmt.Fprintf(&infoStr, " SP: $%02X\n", info.SP)
	fmt.Fprintf(&infoStr, " CYC: %d\n", info.Cycles)
	switch {
	case info.Halted:
		infoStr.WriteString(" HALTED\n")
	case ui.m.Paused():
		infoStr.WriteString(" PAUSED\n")
	}
	infoStr.WriteString("\n")

	// instructions are decoded from PC, the ones before it are not
	// known, so only the following ones are shown
	from := info.PC
	to := from + disasmBytes
	if to < from {
		to = 0xffff
	}
	disasm := ui.m.Disassemble(from, to)
	lines := 0
	for addr := uint32(from); addr <= uint32(to) && lines < disasmLines; addr++ {
		line, ok := disasm[uint16(addr)]
		if !ok {
			continue
		}
		prefix := " "
		if uint16(addr) == info.PC {
			prefix = "*"
		}
		infoStr.WriteString(prefix + line + "\n")
		lines++
	}

	debugScreenOffsetX := float32(gameScreenWidth * gameScreenScale)
	vector.DrawFilledRect(screen, debugScreenOffsetX, 0, debugScreenWidth, debugScreenHeight, color.RGBA{50, 50, 50, 255}, false)
	ebitenutil.DebugPrintAt(screen, infoStr.String(), int(debugScreenOffsetX), 0)
}

const (
	gameScreenScale  = 2
	gameScreenWidth  = display.Width
	gameScreenHeight = display.Height

	debugScreenWidth  = 286
	debugScreenHeight = gameScreenHeight * gameScreenScale

	disasmLines = 16
	disasmBytes = disasmLines * 3
)

func (ui *UI) Layout(_, _ int) (int, int) {
	return gameScreenWidth*gameScreenScale + debugScreenWidth, gameScreenHeight * gameScreenScale
}

func RunUI(ui *UI) error {
	ebiten.SetWindowTitle("em6502")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	screenSizeX, screenSizeY := gameScreenWidth*gameScreenScale+debugScreenWidth, gameScreenHeight*gameScreenScale
	ebiten.SetWindowSize(screenSizeX, screenSizeY)
	ebiten.SetTPS(60)
	return ebiten.RunGame(ui)
}
