package repository

import (
	"github.com/google/wire"

	"github.com/janhq/mirror-server/internal/infrastructure/database/repository/analyticsrepo"
	"github.com/janhq/mirror-server/internal/infrastructure/database/repository/convstaterepo"
	"github.com/janhq/mirror-server/internal/infrastructure/database/repository/journalrepo"
	"github.com/janhq/mirror-server/internal/infrastructure/database/repository/meditationrepo"
	"github.com/janhq/mirror-server/internal/infrastructure/database/repository/profilerepo"
	"github.com/janhq/mirror-server/internal/infrastructure/database/repository/sessionrepo"
)

var RepositoryProvider = wire.NewSet(
	profilerepo.NewProfileGormRepository,
	journalrepo.NewJournalGormRepository,
	sessionrepo.NewSessionGormRepository,
	convstaterepo.NewConversationStateGormRepository,
	meditationrepo.NewMeditationGormRepository,
	analyticsrepo.NewMentorSelectionGormRepository,
)
