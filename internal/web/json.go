package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sweeney/panel-test/internal/panel"
)

// LEDJSON is the JSON representation of an LED descriptor.
type LEDJSON struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Function string `json:"function"`
	Row      int    `json:"row_gpio"`
	Col      int    `json:"col_gpio"`
	PanelRow int    `json:"panel_row"`
	PanelCol int    `json:"panel_col"`
}

// SwitchJSON is the JSON representation of a switch descriptor.
type SwitchJSON struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Function string `json:"function"`
	Row      int    `json:"row_gpio"`
	Col      int    `json:"col_gpio"`
	Invert   bool   `json:"invert"`
	PanelRow int    `json:"panel_row"`
	PanelCol int    `json:"panel_col"`
	Digit    int    `json:"digit"`
	Weight   int    `json:"weight"`
}

// DigitJSON is the JSON representation of an octal digit descriptor.
type DigitJSON struct {
	Number     int    `json:"number"`
	Name       string `json:"name"`
	Function   string `json:"function"`
	DisplayRow int    `json:"display_row"`
	DisplayCol int    `json:"display_col"`
}

// ErrorJSON is the body of a failed lookup.
type ErrorJSON struct {
	Error string `json:"error"`
}

func (s *Server) handleLEDByAddress(w http.ResponseWriter, r *http.Request) {
	row, col, ok := rowCol(w, r)
	if !ok {
		return
	}
	l, found := s.cat.LEDByAddress(row, col)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no LED at row gpio %d, column gpio %d", row, col))
		return
	}
	writeJSON(w, ledJSON(l))
}

func (s *Server) handleLEDByPosition(w http.ResponseWriter, r *http.Request) {
	row, col, ok := rowCol(w, r)
	if !ok {
		return
	}
	l, found := s.cat.LEDByPosition(row, col)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no LED at panel row %d, column %d", row, col))
		return
	}
	writeJSON(w, ledJSON(l))
}

func (s *Server) handleSwitchByAddress(w http.ResponseWriter, r *http.Request) {
	row, col, ok := rowCol(w, r)
	if !ok {
		return
	}
	sw, found := s.cat.SwitchByAddress(row, col)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no switch at row gpio %d, column gpio %d", row, col))
		return
	}
	writeJSON(w, switchJSON(sw))
}

func (s *Server) handleSwitchByPosition(w http.ResponseWriter, r *http.Request) {
	row, col, ok := rowCol(w, r)
	if !ok {
		return
	}
	sw, found := s.cat.SwitchByPosition(row, col)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no switch at panel row %d, column %d", row, col))
		return
	}
	writeJSON(w, switchJSON(sw))
}

func (s *Server) handleDigit(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid digit number")
		return
	}
	d, found := s.cat.Digit(n)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no octal digit %d", n))
		return
	}
	writeJSON(w, DigitJSON{
		Number:     d.Number,
		Name:       d.Name,
		Function:   d.Function,
		DisplayRow: d.DisplayRow,
		DisplayCol: d.DisplayCol,
	})
}

func rowCol(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	vars := mux.Vars(r)
	row, err := strconv.Atoi(vars["row"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid row")
		return 0, 0, false
	}
	col, err := strconv.Atoi(vars["col"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid column")
		return 0, 0, false
	}
	return row, col, true
}

func ledJSON(l panel.LED) LEDJSON {
	return LEDJSON{
		Number:   l.Number,
		Name:     l.Name,
		Function: l.Function,
		Row:      l.Row,
		Col:      l.Col,
		PanelRow: l.PanelRow,
		PanelCol: l.PanelCol,
	}
}

func switchJSON(s panel.Switch) SwitchJSON {
	return SwitchJSON{
		Number:   s.Number,
		Name:     s.Name,
		Function: s.Function,
		Row:      s.Row,
		Col:      s.Col,
		Invert:   s.Invert,
		PanelRow: s.PanelRow,
		PanelCol: s.PanelCol,
		Digit:    s.Digit,
		Weight:   s.Weight,
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorJSON{Error: msg})
}
