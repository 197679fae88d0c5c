package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/daca-chatbot/internal/errs"
	"github.com/deppfellow/daca-chatbot/internal/metrics"
	"github.com/deppfellow/daca-chatbot/internal/model"
	"github.com/deppfellow/daca-chatbot/internal/server"
	"github.com/rs/zerolog"
)

// EmptyMessageDetail is the error detail for a message whose text is blank.
const EmptyMessageDetail = "Message text cannot be empty"

type ChatService struct {
	server *server.Server
}

func NewChatService(s *server.Server) *ChatService {
	return &ChatService{server: s}
}

// Reply answers msg with a greeting that echoes its text.
//
// Text that is empty after trimming whitespace is rejected with a 400. The
// reply repeats the original text, and the response carries fresh metadata
// rather than the request's.
func (s *ChatService) Reply(ctx context.Context, msg *model.Message) (*model.Response, error) {
	logger := zerolog.Ctx(ctx)

	if strings.TrimSpace(msg.Text) == "" {
		s.server.Metrics.RecordChatMessage(metrics.ChatOutcomeRejected)
		logger.Debug().Str("user_id", msg.UserID).Msg("rejected blank chat message")
		return nil, errs.NewBadRequestError(EmptyMessageDetail, nil, nil)
	}

	s.server.Metrics.RecordChatMessage(metrics.ChatOutcomeReplied)

	return &model.Response{
		UserID:   msg.UserID,
		Reply:    fmt.Sprintf("Hello, %s! You said: '%s'. How can I assist you today?", msg.UserID, msg.Text),
		Metadata: model.NewMetadata(),
	}, nil
}
