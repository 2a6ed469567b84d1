package workflow

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asimons81/guide-generator/internal/types"
)

// StageError reports a blocked stage transition.
type StageError struct {
	Stage   Stage
	Message string
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %q: %s", e.Stage, e.Message)
}

// acceptedImageExts are the upload formats the pipeline can re-encode.
var acceptedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// Session is one run of the pipeline from topic to published draft.
type Session struct {
	ID        string                `json:"id"`
	Stage     Stage                 `json:"stage"`
	Article   types.Article         `json:"article"`
	Images    []types.UploadedImage `json:"images,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// NewSession creates an empty session at the strategy stage.
func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		Stage:     StageStrategy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the modification timestamp.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// Advance moves the session one stage forward after checking the guard for
// the current stage. A blocked guard returns a StageError and leaves the
// session unchanged.
func (s *Session) Advance() error {
	switch s.Stage {
	case StageStrategy:
		if s.Article.Title == "" || len(s.Article.Outline) == 0 {
			return &StageError{Stage: s.Stage, Message: "no strategy generated yet"}
		}
	case StageRefine:
		// refinement is always allowed to proceed; edits were validated on entry
	case StageDraft:
		if strings.TrimSpace(s.Article.Content) == "" {
			return &StageError{Stage: s.Stage, Message: "no article content yet"}
		}
	case StageImagePlan:
		if s.Article.ImagePlan.Count() == 0 {
			return &StageError{Stage: s.Stage, Message: "no image plan generated yet"}
		}
	case StageUpload:
		want := s.Article.ImagePlan.Count()
		if got := len(s.Images); got != want {
			return &StageError{Stage: s.Stage, Message: fmt.Sprintf("need exactly %d images, have %d", want, got)}
		}
	case StagePublish:
		return &StageError{Stage: s.Stage, Message: "already at the final stage"}
	default:
		return &StageError{Stage: s.Stage, Message: "unknown stage"}
	}
	s.Stage++
	s.Touch()
	return nil
}

// Back moves exactly one stage toward the start. Data is never cleared on the
// way back; re-running a stage overwrites it instead.
func (s *Session) Back() error {
	if s.Stage <= StageStrategy {
		return &StageError{Stage: s.Stage, Message: "already at the first stage"}
	}
	s.Stage--
	s.Touch()
	return nil
}

// Reset clears everything but the session identity.
func (s *Session) Reset() {
	s.Article = types.Article{}
	s.Images = nil
	s.Stage = StageStrategy
	s.Touch()
}

// AttachImages stores the uploaded files, in order, after checking the
// extension of each and the exact-count gate against the image plan. Partial
// sets are rejected outright.
func (s *Session) AttachImages(files []types.UploadedImage) error {
	want := s.Article.ImagePlan.Count()
	if want == 0 {
		return &StageError{Stage: s.Stage, Message: "no image plan to upload against"}
	}
	if len(files) != want {
		return &StageError{Stage: s.Stage, Message: fmt.Sprintf("plan calls for exactly %d images, got %d", want, len(files))}
	}
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Filename))
		if !acceptedImageExts[ext] {
			return &StageError{Stage: s.Stage, Message: fmt.Sprintf("unsupported image type %q (accepted: png, jpg, jpeg, webp)", f.Filename)}
		}
		if len(f.Data) == 0 {
			return &StageError{Stage: s.Stage, Message: fmt.Sprintf("image %q is empty", f.Filename)}
		}
	}
	s.Images = files
	s.Touch()
	return nil
}
