// Package panel describes the PiDP-11/70 front panel: every LED, switch and
// octal display digit, with its electronic (row GPIO, column GPIO) address and
// its physical position on the panel.
// This package has NO external dependencies and holds no mutable state.
package panel

// LED describes one LED on the matrix.
type LED struct {
	Number   int
	Name     string
	Function string
	Row      int // electronic row GPIO (anode side)
	Col      int // electronic column GPIO (cathode side)
	PanelRow int
	PanelCol int
}

// Switch describes one switch (or encoder line) on the matrix.
type Switch struct {
	Number   int
	Name     string
	Function string
	Row      int  // electronic row GPIO
	Col      int  // electronic column GPIO
	Invert   bool // raw level must be inverted to give the logical state
	PanelRow int
	PanelCol int
	Digit    int // owning octal digit
	Weight   int // 0, 1, 2 or 4
}

// OctalDigit describes one digit of the octal switch display.
type OctalDigit struct {
	Number     int
	Name       string
	Function   string
	DisplayRow int
	DisplayCol int
}

// EncoderGroup is the A/B line pair of one rotary encoder, by switch number.
type EncoderGroup struct {
	Name string
	A    int
	B    int
}

// Layout holds the GPIO line sets and the extents of the panel grids.
type Layout struct {
	LEDRows    []int
	SwitchRows []int
	Columns    []int

	LEDPanelRows    int
	LEDPanelCols    int
	SwitchPanelRows int
	SwitchPanelCols int
	DigitRows       int
	DigitCols       int
}

// Catalog is the full set of panel descriptors. Tables are listed in
// declaration order, which is also the order lookups scan them in.
type Catalog struct {
	Layout   Layout
	LEDs     []LED
	Switches []Switch
	Digits   []OctalDigit
	Encoders []EncoderGroup
}

// Sizes of the PiDP-11/70 panel.
const (
	NumLEDs        = 64
	NumSwitches    = 38 // highest switch number; 20 and 27 are not fitted
	NumOctalDigits = 18
	NumEncoders    = 2
)

// PiDP1170 returns the catalog of the PiDP-11/70 replica panel.
// The returned value shares the package tables and must be treated as read-only.
func PiDP1170() *Catalog {
	return &pidp1170
}

var pidp1170 = Catalog{
	Layout: Layout{
		LEDRows:         []int{20, 21, 22, 23, 24, 25},
		SwitchRows:      []int{16, 17, 18},
		Columns:         []int{26, 27, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13},
		LEDPanelRows:    8,
		LEDPanelCols:    22,
		SwitchPanelRows: 3,
		SwitchPanelCols: 30,
		DigitRows:       3,
		DigitCols:       8,
	},
	LEDs:     leds,
	Switches: switches,
	Digits:   digits,
	Encoders: []EncoderGroup{
		{Name: "E1", A: 34, B: 35},
		{Name: "E2", A: 37, B: 38},
	},
}

var leds = []LED{
	{1, "LED1", "A15", 21, 5, 5, 7},
	{2, "LED2", "A14", 21, 4, 5, 8},
	{3, "LED3", "A13", 21, 27, 5, 9},
	{4, "LED4", "A12", 21, 26, 5, 10},
	{5, "LED5", "A11", 20, 13, 5, 11},
	{6, "LED6", "A10", 20, 12, 5, 12},
	{7, "LED7", "A9", 20, 11, 5, 13},
	{8, "LED8", "A8", 20, 10, 5, 14},
	{9, "LED9", "A7", 20, 9, 5, 15},
	{10, "LED10", "A6", 20, 8, 5, 16},
	{11, "LED11", "A5", 20, 7, 5, 17},
	{12, "LED12", "A4", 20, 6, 5, 18},
	{13, "LED13", "A3", 20, 5, 5, 19},
	{14, "LED14", "A2", 20, 4, 5, 20},
	{15, "LED15", "A1", 20, 27, 5, 21},
	{16, "LED16", "A0", 20, 26, 5, 22},
	{17, "LED17", "A21", 21, 11, 5, 1},
	{18, "LED18", "A20", 21, 10, 5, 2},
	{19, "LED19", "A19", 21, 9, 5, 3},
	{20, "LED20", "A18", 21, 8, 5, 4},
	{21, "LED21", "A17", 21, 7, 5, 5},
	{22, "LED22", "A16", 21, 6, 5, 6},
	{23, "LED23", "RUN", 22, 11, 1, 3},
	{24, "LED24", "PAUSE", 22, 10, 1, 4},
	{25, "LED25", "MASTER", 22, 9, 1, 5},
	{26, "LED26", "USER", 22, 8, 1, 6},
	{27, "LED27", "SUPER", 22, 7, 1, 7},
	{28, "LED28", "KERNEL", 22, 6, 1, 8},
	{29, "LED29", "DATA", 22, 5, 1, 9},
	{30, "LED30", "ADD16", 22, 4, 1, 10},
	{31, "LED31", "ADD18", 22, 27, 1, 11},
	{32, "LED32", "ADD22", 22, 26, 1, 12},
	{33, "LED33", "D15", 24, 5, 8, 3},
	{34, "LED34", "D14", 24, 4, 8, 4},
	{35, "LED35", "D13", 24, 27, 8, 5},
	{36, "LED36", "D12", 24, 26, 8, 6},
	{37, "LED37", "D11", 23, 13, 8, 7},
	{38, "LED38", "D10", 23, 12, 8, 8},
	{39, "LED39", "D9", 23, 11, 8, 9},
	{40, "LED40", "D8", 23, 10, 8, 10},
	{41, "LED41", "D7", 23, 9, 8, 11},
	{42, "LED42", "D6", 23, 8, 8, 12},
	{43, "LED43", "D5", 23, 7, 8, 13},
	{44, "LED44", "D4", 23, 6, 8, 14},
	{45, "LED45", "D3", 23, 5, 8, 15},
	{46, "LED46", "D2", 23, 4, 8, 16},
	{47, "LED47", "D1", 23, 27, 8, 17},
	{48, "LED48", "D0", 23, 26, 8, 18},
	{49, "LED49", "PAR_HIGH", 24, 7, 8, 1},
	{50, "LED50", "PAR_LOW", 24, 6, 8, 2},
	{51, "LED51", "PAR_ERR", 22, 13, 1, 1},
	{52, "LED52", "ADDR_ERR", 22, 12, 1, 2},
	{53, "LED53", "MU_A_FPP/CPU", 25, 12, 6, 2},
	{54, "LED54", "R2_DISP_REG", 25, 13, 7, 2},
	{55, "LED55", "R2_BUS_REG", 24, 13, 7, 1},
	{56, "LED56", "R2_DATA_PATHS", 24, 12, 6, 1},
	{57, "LED57", "R1_KERNEL_D", 24, 10, 3, 1},
	{58, "LED58", "R1_SUPER_D", 24, 9, 2, 1},
	{59, "LED59", "R1_USER_D", 24, 8, 1, 13},
	{60, "LED60", "R1_USER_I", 25, 8, 1, 14},
	{61, "LED61", "R1_SUPER_I", 25, 9, 2, 2},
	{62, "LED62", "R1_KERNEL_I", 25, 10, 3, 2},
	{63, "LED63", "R1_PROG_PHY", 25, 11, 4, 2},
	{64, "LED64", "R1_CONS_PHY", 24, 11, 4, 1},
}

var switches = []Switch{
	{1, "SW1", "SR16", 17, 6, true, 3, 6, 3, 2},
	{2, "SW2", "SR17", 17, 7, true, 3, 5, 3, 4},
	{3, "SW3", "SR18", 17, 8, true, 3, 4, 2, 1},
	{4, "SW4", "SR19", 17, 9, true, 3, 3, 2, 2},
	{5, "SW5", "SR20", 17, 10, true, 3, 2, 2, 4},
	{6, "SW6", "SR21", 17, 11, true, 3, 1, 1, 1},
	{7, "SW7", "SR0", 16, 26, true, 3, 22, 8, 1},
	{8, "SW8", "SR1", 16, 27, true, 3, 21, 8, 2},
	{9, "SW9", "SR2", 16, 4, true, 3, 20, 8, 4},
	{10, "SW10", "SR3", 16, 5, true, 3, 19, 7, 1},
	{11, "SW11", "SR4", 16, 6, true, 3, 18, 7, 2},
	{12, "SW12", "SR5", 16, 7, true, 3, 17, 7, 4},
	{13, "SW13", "SR6", 16, 8, true, 3, 16, 6, 1},
	{14, "SW14", "SR7", 16, 9, true, 3, 15, 6, 2},
	{15, "SW15", "SR8", 16, 10, true, 3, 14, 6, 4},
	{16, "SW16", "SR9", 16, 11, true, 3, 13, 5, 1},
	{17, "SW17", "SR10", 16, 12, true, 3, 12, 5, 2},
	{18, "SW18", "SR11", 16, 13, true, 3, 11, 5, 4},
	{19, "SW19", "START", 18, 9, true, 3, 30, 16, 1},
	{21, "SW21", "LOAD-ADDR", 18, 27, true, 3, 24, 10, 1},
	{22, "SW22", "EXAM", 18, 4, true, 3, 25, 11, 1},
	{23, "SW23", "DEP", 18, 5, true, 3, 26, 12, 1},
	{24, "SW24", "CONT", 18, 6, true, 3, 27, 13, 1},
	{25, "SW25", "ENA_HALT", 18, 7, false, 3, 28, 14, 1},
	{26, "SW26", "SING_INST", 18, 8, true, 3, 29, 15, 1},
	{28, "SW28", "TEST", 18, 26, false, 3, 23, 9, 1},
	{29, "SW29", "SR12", 17, 26, true, 3, 10, 4, 1},
	{30, "SW30", "SR13", 17, 27, true, 3, 9, 4, 2},
	{31, "SW31", "SR14", 17, 4, true, 3, 8, 4, 4},
	{32, "SW32", "SR15", 17, 5, true, 3, 7, 3, 1},
	{33, "SW33", "E1-ADDR", 17, 12, true, 1, 1, 17, 1},
	{34, "SW34", "E1-A (I)", 18, 10, false, 1, 2, 17, 0},
	{35, "SW35", "E1-B (Q)", 18, 11, false, 1, 3, 17, 0},
	{36, "SW36", "E2-DATA", 17, 13, true, 2, 1, 18, 1},
	{37, "SW37", "E2-A (I)", 18, 12, false, 2, 2, 18, 0},
	{38, "SW38", "E2-B (Q)", 18, 13, false, 2, 3, 18, 0},
}

var digits = []OctalDigit{
	{1, "0oSR7", "SR21", 1, 1},
	{2, "0oSR6", "SR20-18", 1, 2},
	{3, "0oSR5", "SR17-15", 1, 3},
	{4, "0oSR4", "SR14-12", 1, 4},
	{5, "0oSR3", "SR11-9", 1, 5},
	{6, "0oSR2", "SR8-6", 1, 6},
	{7, "0oSR1", "SR5-3", 1, 7},
	{8, "0oSR0", "SR2-0", 1, 8},
	{9, "TEST", "TEST", 2, 1},
	{10, "LOAD_ADDR", "LOAD_ADDR", 2, 2},
	{11, "EXAM", "EXAM", 2, 3},
	{12, "DEP", "DEP", 2, 4},
	{13, "CONT", "CONT", 2, 5},
	{14, "ENA_HALT", "ENA_HALT", 2, 6},
	{15, "SING_INST", "SING_INST", 2, 7},
	{16, "START", "START", 2, 8},
	{17, "ADDRESS", "ADDR - PRESS", 3, 1},
	{18, "DATA", "DATA - PRESS", 3, 2},
}
