package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/votervision/backend/internal/models"
)

const (
	localContextBudget = 10000
	webContextBudget   = 6000
	historyPromptTurns = 4
)

const chatSystemInstruction = `You are VoterVision AI, a neutral and factual assistant helping Nepali voters understand candidates, parties and manifestos.
Rules:
- Prioritize the WEB RESULTS over the LOCAL RECORDS when they conflict; web results are fresher.
- Cite the source of factual claims when a source URL is available.
- Stay strictly neutral. Present criticism and praise with equal weight and never endorse a candidate.
- Frame answers for the Nepali political context (provinces, federal parliament, local elections).
- Answer in clear markdown. Keep answers focused on the question.`

const labSystemInstruction = `You are a document analyst. Answer ONLY from the provided documents.
If the documents do not contain the answer, reply exactly: "Information not found in the provided documents."
Answer in clear markdown.`

// ChatService assembles grounded prompts for the public assistant and
// the analysis lab. It owns no state; history and context come from the
// caller.
type ChatService struct {
	llm    Completer
	logger *logrus.Logger
}

func NewChatService(llm Completer, logger *logrus.Logger) *ChatService {
	return &ChatService{
		llm:    llm,
		logger: logger,
	}
}

// Answer responds to a main-assistant query, grounding the model on
// local records, a web digest and the tail of the conversation.
func (s *ChatService) Answer(ctx context.Context, query, localContext, webContext string, history []models.ConversationTurn) string {
	var b strings.Builder

	if localContext != "" {
		b.WriteString("LOCAL RECORDS:\n")
		b.WriteString(truncateRunes(localContext, localContextBudget))
		b.WriteString("\n\n")
	}
	if webContext != "" {
		b.WriteString("WEB RESULTS:\n")
		b.WriteString(truncateRunes(webContext, webContextBudget))
		b.WriteString("\n\n")
	}

	if tail := historyTail(history, historyPromptTurns); len(tail) > 0 {
		b.WriteString("CONVERSATION SO FAR:\n")
		for _, turn := range tail {
			b.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Content))
		}
		b.WriteString("\n")
	}

	b.WriteString("QUESTION: ")
	b.WriteString(query)

	return s.llm.Complete(ctx, b.String(), chatSystemInstruction)
}

// LabAnswer responds to an analysis-lab query using only the uploaded
// document context. No web search, no candidate records.
func (s *ChatService) LabAnswer(ctx context.Context, query, documentContext string, history []models.ConversationTurn) string {
	var b strings.Builder

	b.WriteString("DOCUMENTS:\n")
	if documentContext == "" {
		b.WriteString("(no documents uploaded)\n")
	} else {
		b.WriteString(documentContext)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if tail := historyTail(history, historyPromptTurns); len(tail) > 0 {
		b.WriteString("CONVERSATION SO FAR:\n")
		for _, turn := range tail {
			b.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Content))
		}
		b.WriteString("\n")
	}

	b.WriteString("QUESTION: ")
	b.WriteString(query)

	return s.llm.Complete(ctx, b.String(), labSystemInstruction)
}

func historyTail(history []models.ConversationTurn, n int) []models.ConversationTurn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
