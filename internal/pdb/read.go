// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdb reads PDB and PQR structure files into records and groups
// atoms into residues.
package pdb

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/pdb2pqr/pkg/types"
)

// col returns the 1-based inclusive column range [start, end] of line,
// trimmed. Columns past the end of a short line are treated as blank.
func col(line string, start, end int) string {
	if start > len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[start-1 : end])
}

// Read parses PDB records from r. Blank lines are skipped. ATOM and HETATM
// lines become *types.Atom, SIGATM, ANISOU, SIGUIJ, and SEQADV become
// *types.ResidueRecord, and everything else is kept as *types.Generic.
func Read(r io.Reader) ([]types.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var records []types.Record
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		rtype := strings.ToUpper(col(line, 1, 6))
		switch rtype {
		case "ATOM", "HETATM":
			atom, err := parseAtom(rtype, line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			records = append(records, atom)
		case "SIGATM", "ANISOU", "SIGUIJ":
			records = append(records, &types.ResidueRecord{Type: rtype, ResName: col(line, 18, 20), Line: line})
		case "SEQADV":
			records = append(records, &types.ResidueRecord{Type: rtype, ResName: col(line, 13, 15), Line: line})
		default:
			records = append(records, &types.Generic{Type: rtype, Line: line})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading structure: %w", err)
	}
	return records, nil
}

func parseAtom(rtype, line string) (*types.Atom, error) {
	a := &types.Atom{
		Type:       rtype,
		Name:       col(line, 13, 16),
		AltLoc:     col(line, 17, 17),
		ResName:    col(line, 18, 20),
		ChainID:    col(line, 22, 22),
		ICode:      col(line, 27, 27),
		SegID:      col(line, 73, 76),
		Element:    col(line, 77, 78),
		Charge:     col(line, 79, 80),
		Occupancy:  1.0,
		TempFactor: 0.0,
		Line:       line,
	}

	var err error
	if a.Serial, err = atoiField(line, 7, 11, "serial number"); err != nil {
		return nil, err
	}
	if a.ResSeq, err = atoiField(line, 23, 26, "residue sequence number"); err != nil {
		return nil, err
	}
	if a.X, err = floatField(line, 31, 38, "x coordinate"); err != nil {
		return nil, err
	}
	if a.Y, err = floatField(line, 39, 46, "y coordinate"); err != nil {
		return nil, err
	}
	if a.Z, err = floatField(line, 47, 54, "z coordinate"); err != nil {
		return nil, err
	}
	if s := col(line, 55, 60); s != "" {
		if a.Occupancy, err = strconv.ParseFloat(s, 64); err != nil {
			return nil, fmt.Errorf("invalid occupancy %q", s)
		}
	}
	if s := col(line, 61, 66); s != "" {
		if a.TempFactor, err = strconv.ParseFloat(s, 64); err != nil {
			return nil, fmt.Errorf("invalid temperature factor %q", s)
		}
	}
	if a.Name == "" {
		return nil, fmt.Errorf("missing atom name")
	}
	return a, nil
}

func atoiField(line string, start, end int, what string) (int, error) {
	s := col(line, start, end)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return n, nil
}

func floatField(line string, start, end int, what string) (float64, error) {
	s := col(line, start, end)
	if s == "" {
		return 0, fmt.Errorf("missing %s", what)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return f, nil
}

// Atoms returns the ATOM and HETATM records of records in order.
func Atoms(records []types.Record) []*types.Atom {
	var atoms []*types.Atom
	for _, rec := range records {
		if a, ok := rec.(*types.Atom); ok {
			atoms = append(atoms, a)
		}
	}
	return atoms
}
