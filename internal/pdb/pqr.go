// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdb

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pdiddy/pdb2pqr/pkg/types"
)

// ReadPQR parses the ATOM and HETATM lines of a PQR file. PQR columns are
// whitespace-delimited: record, serial, atom name, residue name, optional
// chain, residue number (optionally followed by an insertion code), x, y,
// z, charge, radius. Other records are ignored.
func ReadPQR(r io.Reader) ([]*types.Atom, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var atoms []*types.Atom
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rtype := strings.ToUpper(fields[0])
		if rtype != "ATOM" && rtype != "HETATM" {
			continue
		}

		atom, err := parsePQRAtom(rtype, fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		atom.Line = line
		atoms = append(atoms, atom)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading PQR: %w", err)
	}
	return atoms, nil
}

func parsePQRAtom(rtype string, fields []string) (*types.Atom, error) {
	var chain string
	switch len(fields) {
	case 10:
	case 11:
		chain = fields[4]
		fields = append(fields[:4:4], fields[5:]...)
	default:
		return nil, fmt.Errorf("expected 10 or 11 fields, got %d", len(fields))
	}

	serial, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("invalid serial number %q", fields[1])
	}

	resSeq, icode, err := splitResSeq(fields[4])
	if err != nil {
		return nil, err
	}

	var nums [5]float64
	names := [5]string{"x coordinate", "y coordinate", "z coordinate", "charge", "radius"}
	for i := range nums {
		v, err := strconv.ParseFloat(fields[5+i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q", names[i], fields[5+i])
		}
		nums[i] = v
	}

	return &types.Atom{
		Type:     rtype,
		Serial:   serial,
		Name:     fields[2],
		ResName:  fields[3],
		ChainID:  chain,
		ResSeq:   resSeq,
		ICode:    icode,
		X:        nums[0],
		Y:        nums[1],
		Z:        nums[2],
		FFCharge: nums[3],
		Radius:   nums[4],
	}, nil
}

// splitResSeq separates a trailing insertion code letter from a residue
// number such as "52A".
func splitResSeq(s string) (int, string, error) {
	var icode string
	if n := len(s); n > 1 && unicode.IsLetter(rune(s[n-1])) {
		icode = s[n-1:]
		s = s[:n-1]
	}
	seq, err := strconv.Atoi(s)
	if err != nil {
		return 0, "", fmt.Errorf("invalid residue sequence number %q", s+icode)
	}
	return seq, icode, nil
}
