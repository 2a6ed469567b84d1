// Package workflow holds pipeline sessions: the stage machine, its advance
// and back guards, and the file-backed checkpoint store the CLI stages hand
// off through.
package workflow

import "fmt"

// Stage identifies a pipeline step. Stages advance monotonically; Back moves
// exactly one stage.
type Stage int

const (
	StageStrategy Stage = iota + 1
	StageRefine
	StageDraft
	StageImagePlan
	StageUpload
	StagePublish
)

var stageLabels = map[Stage]string{
	StageStrategy:  "SEO Strategy",
	StageRefine:    "Refine Strategy",
	StageDraft:     "Article Draft",
	StageImagePlan: "Image Plan",
	StageUpload:    "Image Upload",
	StagePublish:   "Publish",
}

// String returns the human-readable stage label.
func (s Stage) String() string {
	if label, ok := stageLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Valid reports whether s is a defined stage.
func (s Stage) Valid() bool {
	return s >= StageStrategy && s <= StagePublish
}
