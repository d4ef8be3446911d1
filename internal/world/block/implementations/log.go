package implementations

import "github.com/annel0/voxel-sim/internal/world/block"

// Варианты древесины
const (
	WoodOak uint8 = iota
	WoodSpruce
	WoodBirch
	WoodJungle
)

// Axis ориентация бревна
type Axis uint8

const (
	AxisY Axis = iota
	AxisX
	AxisZ
	AxisNone // Кора со всех сторон
)

// LogState хранит ориентацию бревна в битах 0xC
type LogState struct {
	Axis Axis
}

func (s *LogState) WriteMeta() uint8    { return uint8(s.Axis) << 2 }
func (s *LogState) ReadMeta(meta uint8) { s.Axis = Axis(meta>>2) & 0x03 }

// LogBehavior реализует поведение бревна
type LogBehavior struct {
	block.Base
}

func (LogBehavior) ID() block.BlockID                   { return block.LogBlockID }
func (LogBehavior) Name() string                        { return "Log" }
func (LogBehavior) StateBitmask() uint8                 { return 0x0C }
func (LogBehavior) NewDynamicState() block.DynamicState { return &LogState{} }
func (LogBehavior) Hardness() float64                   { return 2 }
func (LogBehavior) ToolType() block.ToolType            { return block.ToolTypeAxe }
