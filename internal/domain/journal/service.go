package journal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/janhq/mirror-server/internal/domain/embedding"
	"github.com/janhq/mirror-server/internal/metrics"
	"github.com/janhq/mirror-server/internal/utils/platformerrors"
)

// Service is the journal store.
type Service interface {
	Append(ctx context.Context, owner, text string, tags Tags) (*Entry, error)
	FindSimilar(ctx context.Context, owner, query string, threshold float64, limit int) ([]ScoredEntry, error)
	FindRecent(ctx context.Context, owner string, count int) ([]Entry, error)
	Recall(ctx context.Context, owner, query string, threshold float64, limit int) (*RecallResult, error)
	ArchiveOlderThan(ctx context.Context, owner string, age time.Duration) (int64, error)
	Get(ctx context.Context, owner, entryID string) (*Entry, error)
	AddFollowup(ctx context.Context, owner, entryID, question, answer string) (*Followup, error)
	GetFollowup(ctx context.Context, owner, followupID string) (*Followup, error)
	Synthesize(ctx context.Context, owner, followupID, text string) (*Entry, error)
	LinkSynthesized(ctx context.Context, owner, followupID, entryID string) error
}

// Config holds the journal tunables.
type Config struct {
	EmbeddingTimeout time.Duration
}

type service struct {
	repo     Repository
	embedder embedding.Client
	cfg      Config
	log      zerolog.Logger
	now      func() time.Time
}

// NewService builds the journal store. embedder may be nil, in which case entries are
// stored without vectors and similarity search reports an external failure.
func NewService(repo Repository, embedder embedding.Client, cfg Config, log zerolog.Logger) Service {
	if cfg.EmbeddingTimeout <= 0 {
		cfg.EmbeddingTimeout = 8 * time.Second
	}
	return &service{
		repo:     repo,
		embedder: embedder,
		cfg:      cfg,
		log:      log.With().Str("component", "journal-service").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Append stores text even when no embedding can be produced.
func (s *service) Append(ctx context.Context, owner, text string, tags Tags) (*Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "journal content is required", nil, "")
	}

	entry := &Entry{
		ID:        uuid.NewString(),
		Owner:     owner,
		Content:   text,
		MoodTags:  normalizeTags(tags.Mood),
		TopicTags: normalizeTags(tags.Topic),
		CreatedAt: s.now(),
	}

	vector, err := s.embed(ctx, text)
	if err != nil {
		reason := embeddingFailureReason(err)
		metrics.RecordEmbeddingFailure(reason)
		s.log.Warn().Err(err).Str("owner", owner).Str("reason", reason).Msg("storing journal entry without embedding")
	} else {
		entry.Embedding = vector
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "create journal entry")
	}
	return entry, nil
}

func (s *service) FindSimilar(ctx context.Context, owner, query string, threshold float64, limit int) ([]ScoredEntry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "query is required", nil, "")
	}
	if limit <= 0 {
		return []ScoredEntry{}, nil
	}

	vector, err := s.embed(ctx, query)
	if err != nil {
		metrics.RecordEmbeddingFailure(embeddingFailureReason(err))
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "embed query", err, "")
	}

	start := time.Now()
	results, err := s.repo.SearchSimilar(ctx, owner, vector, threshold, limit)
	metrics.RecordVectorSearch(time.Since(start).Seconds())
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "search journal")
	}
	return results, nil
}

func (s *service) FindRecent(ctx context.Context, owner string, count int) ([]Entry, error) {
	if count <= 0 {
		return []Entry{}, nil
	}
	entries, err := s.repo.FindRecent(ctx, owner, count)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "list recent entries")
	}
	return entries, nil
}

// Recall prefers similar entries and falls back to the most recent ones.
func (s *service) Recall(ctx context.Context, owner, query string, threshold float64, limit int) (*RecallResult, error) {
	similar, err := s.FindSimilar(ctx, owner, query, threshold, limit)
	if err != nil {
		s.log.Debug().Err(err).Str("owner", owner).Msg("similarity recall failed, using recent entries")
	}
	if err == nil && len(similar) > 0 {
		entries := make([]Entry, len(similar))
		for i := range similar {
			entries[i] = similar[i].Entry
		}
		metrics.RecordRecall(RecallSourceSimilar)
		return &RecallResult{Entries: entries, Source: RecallSourceSimilar}, nil
	}

	recent, err := s.FindRecent(ctx, owner, limit)
	if err != nil {
		return nil, err
	}
	metrics.RecordRecall(RecallSourceRecent)
	return &RecallResult{Entries: recent, Source: RecallSourceRecent}, nil
}

func (s *service) ArchiveOlderThan(ctx context.Context, owner string, age time.Duration) (int64, error) {
	if age <= 0 {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "archive age must be positive", nil, "")
	}
	count, err := s.repo.ArchiveBefore(ctx, owner, s.now().Add(-age))
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "archive entries")
	}
	metrics.RecordArchived(count)
	if count > 0 {
		s.log.Info().Str("owner", owner).Int64("archived", count).Msg("archived journal entries")
	}
	return count, nil
}

func (s *service) Get(ctx context.Context, owner, entryID string) (*Entry, error) {
	entry, err := s.repo.FindByID(ctx, owner, entryID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "get journal entry")
	}
	return entry, nil
}

func (s *service) AddFollowup(ctx context.Context, owner, entryID, question, answer string) (*Followup, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "question is required", nil, "")
	}
	if _, err := s.repo.FindByID(ctx, owner, entryID); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "add followup")
	}

	now := s.now()
	f := &Followup{
		ID:        uuid.NewString(),
		EntryID:   entryID,
		Owner:     owner,
		Question:  question,
		Answer:    strings.TrimSpace(answer),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateFollowup(ctx, f); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "create followup")
	}
	return f, nil
}

func (s *service) GetFollowup(ctx context.Context, owner, followupID string) (*Followup, error) {
	f, err := s.repo.FindFollowup(ctx, owner, followupID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "get followup")
	}
	return f, nil
}

// Synthesize appends text as a new entry and links it to the followup. When the entry is
// stored but the link fails, the entry is returned together with a *LinkError.
func (s *service) Synthesize(ctx context.Context, owner, followupID, text string) (*Entry, error) {
	f, err := s.GetFollowup(ctx, owner, followupID)
	if err != nil {
		return nil, err
	}
	if f.IsSynthesized() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "followup already synthesized", nil, "")
	}

	entry, err := s.Append(ctx, owner, text, Tags{})
	if err != nil {
		return nil, err
	}

	if err := s.LinkSynthesized(ctx, owner, followupID, entry.ID); err != nil {
		s.log.Error().Err(err).Str("entry_id", entry.ID).Str("followup_id", followupID).Msg("synthesized entry left unlinked")
		return entry, &LinkError{Entry: entry, FollowupID: followupID, Err: err}
	}
	return entry, nil
}

// LinkSynthesized points a followup at its synthesized entry. Linking the same entry twice
// is a no-op; replacing an existing link is a conflict.
func (s *service) LinkSynthesized(ctx context.Context, owner, followupID, entryID string) error {
	f, err := s.GetFollowup(ctx, owner, followupID)
	if err != nil {
		return err
	}
	if f.IsSynthesized() {
		return linkOutcome(ctx, f, entryID)
	}
	if _, err := s.repo.FindByID(ctx, owner, entryID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "link followup")
	}

	rows, err := s.repo.LinkFollowup(ctx, owner, followupID, entryID)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "link followup")
	}
	if rows > 0 {
		return nil
	}

	// lost a race with another linker
	f, err = s.GetFollowup(ctx, owner, followupID)
	if err != nil {
		return err
	}
	return linkOutcome(ctx, f, entryID)
}

func linkOutcome(ctx context.Context, f *Followup, entryID string) error {
	if f.IsSynthesized() && *f.SynthesizedEntryID == entryID {
		return nil
	}
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "followup already linked to another entry", nil, "")
}

func (s *service) embed(ctx context.Context, text string) ([]float32, error) {
	if s.embedder == nil {
		return nil, errEmbeddingDisabled
	}

	embedCtx, cancel := context.WithTimeout(ctx, s.cfg.EmbeddingTimeout)
	defer cancel()

	vector, err := s.embedder.EmbedSingle(embedCtx, text)
	if err != nil {
		return nil, err
	}
	if dim := s.embedder.Dimension(); dim > 0 && len(vector) != dim {
		return nil, embedding.ErrDimensionMismatch
	}
	return vector, nil
}

var errEmbeddingDisabled = errors.New("embedding provider not configured")

func embeddingFailureReason(err error) string {
	switch {
	case errors.Is(err, errEmbeddingDisabled):
		return "disabled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, embedding.ErrDimensionMismatch):
		return "dimension"
	default:
		return "provider"
	}
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
