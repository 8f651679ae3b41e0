// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunStatus records how a run ended.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// Run summarizes one structure preparation run for the history database.
type Run struct {
	// ID is a UUID assigned when the run starts.
	ID string `json:"id" yaml:"id"`

	Input  string     `json:"input" yaml:"input"`
	Output string     `json:"output" yaml:"output"`
	FF     Forcefield `json:"ff" yaml:"ff"`

	// Options is the full option set used for the run.
	Options RunOptions `json:"options" yaml:"options"`

	Atoms        int `json:"atoms" yaml:"atoms"`
	Residues     int `json:"residues" yaml:"residues"`
	WaterDropped int `json:"water_dropped" yaml:"water_dropped"`

	Warnings []string  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Status   RunStatus `json:"status" yaml:"status"`
	Error    string    `json:"error,omitempty" yaml:"error,omitempty"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
}
