package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/asimons81/guide-generator/internal/drafting"
	"github.com/asimons81/guide-generator/internal/imageplan"
	"github.com/asimons81/guide-generator/internal/publish"
	"github.com/asimons81/guide-generator/internal/strategy"
	"github.com/asimons81/guide-generator/internal/types"
	"github.com/asimons81/guide-generator/internal/workflow"
)

// maxUploadBytes caps a multipart image upload request.
const maxUploadBytes = 64 << 20

// sessionView is the session snapshot returned to clients. Raw image bytes
// are summarized as a count.
type sessionView struct {
	ID         string        `json:"id"`
	Stage      int           `json:"stage"`
	StageLabel string        `json:"stage_label"`
	Article    types.Article `json:"article"`
	ImageCount int           `json:"image_count"`
	UpdatedAt  string        `json:"updated_at"`
}

func viewOf(sess *workflow.Session) sessionView {
	return sessionView{
		ID:         sess.ID,
		Stage:      int(sess.Stage),
		StageLabel: sess.Stage.String(),
		Article:    sess.Article,
		ImageCount: len(sess.Images),
		UpdatedAt:  sess.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// session returns the in-memory session for id, falling back to its disk
// checkpoint. Caller must hold s.mu.
func (s *Server) session(id string) (*workflow.Session, error) {
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	sess, err := s.store.Load(id)
	if err != nil {
		return nil, err
	}
	s.sessions[id] = sess
	return sess, nil
}

// withSession runs fn against the named session under the lock and
// checkpoints the session afterwards. Stage transitions are strictly
// sequential, so serializing all session work behind one lock is fine.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(sess *workflow.Session) (any, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := fn(sess)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.store.Save(sess); err != nil {
		log.Printf("Failed to checkpoint session %s: %v", sess.ID, err)
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := workflow.NewSession()
	s.sessions[sess.ID] = sess
	if err := s.store.Save(sess); err != nil {
		log.Printf("Failed to checkpoint session %s: %v", sess.ID, err)
	}
	s.jsonResponse(w, http.StatusCreated, viewOf(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *workflow.Session) (any, error) {
		return viewOf(sess), nil
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := r.PathValue("id")
	if _, err := s.session(id); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	delete(s.sessions, id)
	if err := s.store.Delete(id); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *workflow.Session) (any, error) {
		sess.Reset()
		return viewOf(sess), nil
	})
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *workflow.Session) (any, error) {
		if err := sess.Back(); err != nil {
			return nil, err
		}
		return viewOf(sess), nil
	})
}

func (s *Server) handleGenerateStrategy(w http.ResponseWriter, r *http.Request) {
	var req types.StrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	s.withSession(w, r, func(sess *workflow.Session) (any, error) {
		if sess.Stage != workflow.StageStrategy {
			return nil, &workflow.StageError{Stage: sess.Stage, Message: "strategy can only be generated at the first stage"}
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}

		strat, err := strategy.Generate(r.Context(), s.llm, &req)
		if err != nil {
			return nil, err
		}
		strategy.Apply(&sess.Article, &req, strat)
		if err := sess.Advance(); err != nil {
			return nil, err
		}
		return viewOf(sess), nil
	})
}

func (s *Server) handleRefineStrategy(w http.ResponseWriter, r *http.Request) {
	var req types.RefineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	s.withSession(w, r, func(sess *workflow.Session) (any, error) {
		if sess.Stage != workflow.StageRefine {
			return nil, &workflow.StageError{Stage: sess.Stage, Message: "refinement only applies at the refine stage"}
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}
		if err := strategy.Refine(&sess.Article, &req); err != nil {
			return nil, err
		}
		if err := sess.Advance(); err != nil {
			return nil, err
		}
		return viewOf(sess), nil
	})
}

func (s *Server) handleGenerateDraft(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *workflow.Session) (any, error) {
		if sess.Stage != workflow.StageDraft {
			return nil, &workflow.StageError{Stage: sess.Stage, Message: "drafting only applies at the draft stage"}
		}

		// re-entry with content present regenerates nothing
		if strings.TrimSpace(sess.Article.Content) == "" {
			content, err := drafting.Generate(r.Context(), s.llm, &sess.Article)
			if err != nil {
				return nil, err
			}
			sess.Article.Content = content
		}
		if err := sess.Advance(); err != nil {
			return nil, err
		}

		return map[string]any{
			"session":   viewOf(sess),
			"checklist": drafting.Checklist(&sess.Article),
		}, nil
	})
}

func (s *Server) handleEditContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	s.withSession(w, r, func(sess *workflow.Session) (any, error) {
		if strings.TrimSpace(req.Content) == "" {
			return nil, &ErrValidation{Field: "content", Message: "must not be empty"}
		}
		sess.Article.Content = req.Content
		sess.Touch()
		return viewOf(sess), nil
	})
}

func (s *Server) handleChecklist(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *workflow.Session) (any, error) {
		if strings.TrimSpace(sess.Article.Content) == "" {
			return nil, &workflow.StageError{Stage: sess.Stage, Message: "no article content to check yet"}
		}
		return map[string]any{"checklist": drafting.Checklist(&sess.Article)}, nil
	})
}

func (s *Server) handleGenerateImagePlan(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *workflow.Session) (any, error) {
		if sess.Stage != workflow.StageImagePlan {
			return nil, &workflow.StageError{Stage: sess.Stage, Message: "image planning only applies at the image plan stage"}
		}

		if sess.Article.ImagePlan.Count() == 0 {
			plan, err := imageplan.Generate(r.Context(), s.llm, &sess.Article)
			if err != nil {
				return nil, err
			}
			sess.Article.ImagePlan = plan
		}
		if err := sess.Advance(); err != nil {
			return nil, err
		}
		return viewOf(sess), nil
	})
}

func (s *Server) handleEditImagePlan(w http.ResponseWriter, r *http.Request) {
	var plan types.ImagePlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	s.withSession(w, r, func(sess *workflow.Session) (any, error) {
		if sess.Article.ImagePlan.Count() == 0 {
			return nil, &workflow.StageError{Stage: sess.Stage, Message: "no image plan to edit yet"}
		}
		if len(plan.Images) == 0 {
			return nil, &ErrValidation{Field: "images", Message: "must contain at least one descriptor"}
		}
		for _, img := range plan.Images {
			if img.Position != types.PositionFeatured && img.Position != types.PositionAfterSection {
				return nil, &ErrValidation{Field: "images", Message: "position must be featured or after_section"}
			}
			if strings.TrimSpace(img.Prompt) == "" || strings.TrimSpace(img.AltText) == "" {
				return nil, &ErrValidation{Field: "images", Message: "every descriptor needs a prompt and alt text"}
			}
		}

		sess.Article.ImagePlan = &plan
		sess.Touch()
		return viewOf(sess), nil
	})
}

func (s *Server) handleImagePrompts(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *workflow.Session) (any, error) {
		if sess.Article.ImagePlan.Count() == 0 {
			return nil, &workflow.StageError{Stage: sess.Stage, Message: "no image plan generated yet"}
		}
		return map[string]string{"prompts": imageplan.PromptListing(sess.Article.ImagePlan)}, nil
	})
}

func (s *Server) handleUploadImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart request: "+err.Error())
		return
	}

	var files []types.UploadedImage
	for _, header := range r.MultipartForm.File["images"] {
		f, err := header.Open()
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "failed to read upload: "+err.Error())
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "failed to read upload: "+err.Error())
			return
		}
		files = append(files, types.UploadedImage{Filename: header.Filename, Data: data})
	}

	s.withSession(w, r, func(sess *workflow.Session) (any, error) {
		if sess.Stage != workflow.StageUpload {
			return nil, &workflow.StageError{Stage: sess.Stage, Message: "uploads only apply at the upload stage"}
		}
		if err := sess.AttachImages(files); err != nil {
			return nil, err
		}
		if err := sess.Advance(); err != nil {
			return nil, err
		}
		return viewOf(sess), nil
	})
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *workflow.Session) (any, error) {
		if sess.Stage != workflow.StagePublish {
			return nil, &workflow.StageError{Stage: sess.Stage, Message: "publishing only applies at the final stage"}
		}

		publisher := publish.New(s.cms, nil)
		report, err := publisher.Run(r.Context(), &sess.Article, sess.Images)
		if err != nil {
			return nil, err
		}
		return report, nil
	})
}
