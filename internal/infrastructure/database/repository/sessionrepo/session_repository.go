package sessionrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/janhq/mirror-server/internal/domain/session"
	"github.com/janhq/mirror-server/internal/infrastructure/database"
	"github.com/janhq/mirror-server/internal/infrastructure/database/dbschema"
)

// SessionGormRepository implements session.Repository using GORM.
type SessionGormRepository struct {
	db *gorm.DB
}

var _ session.Repository = (*SessionGormRepository)(nil)

func NewSessionGormRepository(db *gorm.DB) session.Repository {
	return &SessionGormRepository{db: db}
}

func (repo *SessionGormRepository) FindOpen(ctx context.Context, owner string) (*session.Session, error) {
	var entity dbschema.ChatSession
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND ended_at IS NULL", owner).
		Order("started_at DESC").
		First(&entity).
		Error
	if err != nil {
		return nil, database.RepoError(ctx, err, "open chat session not found", "cs-01")
	}
	return entity.EtoD(), nil
}

// Create relies on ux_chat_sessions_open to reject a second open session.
func (repo *SessionGormRepository) Create(ctx context.Context, s *session.Session) error {
	err := repo.db.WithContext(ctx).Create(dbschema.NewSchemaChatSession(s)).Error
	if database.IsUniqueViolation(err) {
		return session.ErrOpenSessionExists
	}
	if err != nil {
		return database.RepoError(ctx, err, "failed to create chat session", "cs-02")
	}
	return nil
}

func (repo *SessionGormRepository) FindByID(ctx context.Context, owner, id string) (*session.Session, error) {
	var entity dbschema.ChatSession
	err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, owner).
		First(&entity).
		Error
	if err != nil {
		return nil, database.RepoError(ctx, err, "chat session not found", "cs-03")
	}
	return entity.EtoD(), nil
}

func (repo *SessionGormRepository) End(ctx context.Context, owner, id string, at time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&dbschema.ChatSession{}).
		Where("id = ? AND user_id = ? AND ended_at IS NULL", id, owner).
		Update("ended_at", at)
	if result.Error != nil {
		return 0, database.RepoError(ctx, result.Error, "failed to end chat session", "cs-04")
	}
	return result.RowsAffected, nil
}

const appendMessageSQL = `
INSERT INTO chat_messages (id, session_id, role, content, persona_id, created_at)
SELECT ?, ?, ?, ?, ?, ?
WHERE EXISTS (SELECT 1 FROM chat_sessions WHERE id = ? AND ended_at IS NULL)
RETURNING seq`

// AppendMessage inserts only while the session is open, in a single statement.
func (repo *SessionGormRepository) AppendMessage(ctx context.Context, m *session.Message) (int64, error) {
	entity := dbschema.NewSchemaChatMessage(m)

	var seqs []int64
	err := repo.db.WithContext(ctx).
		Raw(appendMessageSQL,
			entity.ID, entity.SessionID, entity.Role, entity.Content, entity.PersonaID, entity.CreatedAt,
			entity.SessionID,
		).
		Scan(&seqs).
		Error
	if err != nil {
		return 0, database.RepoError(ctx, err, "failed to append chat message", "cs-05")
	}
	if len(seqs) > 0 {
		m.Seq = seqs[0]
	}
	return int64(len(seqs)), nil
}

// ListMessages orders by seq, which the database assigns at insert. created_at is the
// caller's clock and can disagree across replicas.
func (repo *SessionGormRepository) ListMessages(ctx context.Context, sessionID string) ([]session.Message, error) {
	var rows []dbschema.ChatMessage
	err := repo.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("seq ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, database.RepoError(ctx, err, "failed to list chat messages", "cs-06")
	}

	messages := make([]session.Message, 0, len(rows))
	for i := range rows {
		messages = append(messages, *rows[i].EtoD())
	}
	return messages, nil
}
