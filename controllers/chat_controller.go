package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"travel-backend/middleware"
	"travel-backend/services"
	"travel-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgEmptyMessage    = "Please enter a message."
	msgInvalidJSON     = "Invalid JSON format."
	msgNotUnderstood   = "Sorry, I didn't understand that."
	msgDialogueFailure = "Error communicating with the dialogue engine."
	msgSomethingWrong  = "Something went wrong."

	flightShortcutLimit = 3
	testListLimit       = 2
)

type ChatController struct {
	Catalog  *services.CatalogService
	Messages *services.MessageService
	Dialogue *services.DialogueClient
	// DialogueTest is Dialogue with the longer timeout used by the test scenario.
	DialogueTest *services.DialogueClient
	LLM          *services.LLMClient
}

func NewChatController(catalog *services.CatalogService, messages *services.MessageService,
	dialogue, dialogueTest *services.DialogueClient, llm *services.LLMClient) *ChatController {
	return &ChatController{
		Catalog:      catalog,
		Messages:     messages,
		Dialogue:     dialogue,
		DialogueTest: dialogueTest,
		LLM:          llm,
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

// readMessage binds {message} and answers 400 itself on malformed JSON.
func readMessage(ctx *gin.Context) (string, bool) {
	var req chatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("invalid chat payload", zap.String("path", ctx.Request.URL.Path), zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"reply": msgInvalidJSON})
		return "", false
	}
	return strings.TrimSpace(req.Message), true
}

func senderID(ctx *gin.Context) string {
	if _, username, ok := middleware.CurrentUser(ctx); ok && username != "" {
		return username
	}
	return "anonymous"
}

// saveExchange persists the exchange for authenticated callers. Failures are
// logged and never change the reply.
func (c *ChatController) saveExchange(ctx *gin.Context, message, reply string, buttons []utils.Button, custom interface{}) {
	userID, _, ok := middleware.CurrentUser(ctx)
	if !ok {
		return
	}
	var payload interface{}
	if len(buttons) > 0 || custom != nil {
		payload = gin.H{"buttons": buttons, "custom": custom}
	}
	if _, err := c.Messages.Save(ctx.Request.Context(), userID, message, reply, payload); err != nil {
		zap.L().Error("failed to save chat message", zap.Uint("user_id", userID), zap.Error(err))
	}
}

// Chat relays a message to the dialogue engine.
// POST /chat
func (c *ChatController) Chat(ctx *gin.Context) {
	message, ok := readMessage(ctx)
	if !ok {
		return
	}
	if message == "" {
		ctx.JSON(http.StatusOK, gin.H{"reply": msgEmptyMessage})
		return
	}

	if strings.EqualFold(message, "book_flight") {
		c.flightShortcut(ctx, message)
		return
	}

	messages, err := c.Dialogue.Send(ctx.Request.Context(), senderID(ctx), message)
	if err != nil {
		zap.L().Error("dialogue engine error", zap.Error(err))
		utils.ChatReply(ctx, http.StatusBadGateway, msgDialogueFailure, nil, nil)
		return
	}

	reply := services.Aggregate(messages, msgNotUnderstood)
	var custom interface{}
	if reply.Custom != nil {
		custom = reply.Custom
	}
	c.saveExchange(ctx, message, reply.Text, reply.Buttons, custom)
	utils.ChatReply(ctx, http.StatusOK, reply.Text, reply.Buttons, custom)
}

// flightShortcut answers "book_flight" from the flights table directly.
func (c *ChatController) flightShortcut(ctx *gin.Context, message string) {
	flights, err := c.Catalog.ListFlights(ctx.Request.Context(), flightShortcutLimit)
	if err != nil {
		zap.L().Error("flight lookup failed", zap.Error(err))
		utils.ChatReply(ctx, http.StatusInternalServerError, msgSomethingWrong, nil, nil)
		return
	}
	cards := utils.FlightCards(flights)
	reply := fmt.Sprintf("Found %d flights.", len(cards.Cards))
	c.saveExchange(ctx, message, reply, nil, cards)
	utils.ChatReply(ctx, http.StatusOK, reply, nil, cards)
}

// ChatAI relays a message to the hosted LLM.
// POST /chat/ai
func (c *ChatController) ChatAI(ctx *gin.Context) {
	message, ok := readMessage(ctx)
	if !ok {
		return
	}
	if message == "" {
		ctx.JSON(http.StatusOK, gin.H{"reply": msgEmptyMessage})
		return
	}

	reply, err := c.LLM.Complete(ctx.Request.Context(), message)
	if err != nil {
		if errors.Is(err, services.ErrUpstreamAuth) {
			zap.L().Error("llm rejected credentials", zap.Error(err))
		} else {
			zap.L().Error("llm error", zap.Error(err))
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"reply": services.FallbackReply(message)})
		return
	}
	if reply == "" {
		reply = services.FallbackReply(message)
	}

	c.saveExchange(ctx, message, reply, nil, nil)
	ctx.JSON(http.StatusOK, gin.H{"reply": reply})
}

// TestAPI routes a few fixed scenarios used to check the chat front-end.
// POST /test-api
func (c *ChatController) TestAPI(ctx *gin.Context) {
	message, ok := readMessage(ctx)
	if !ok {
		return
	}
	if message == "" {
		ctx.JSON(http.StatusOK, gin.H{"reply": "Please provide a message for testing."})
		return
	}

	reqCtx := ctx.Request.Context()
	switch strings.ToLower(message) {
	case "test_hotels":
		hotels, err := c.Catalog.ListHotels(reqCtx, testListLimit)
		if err != nil {
			zap.L().Error("test api hotels", zap.Error(err))
			utils.ChatReply(ctx, http.StatusInternalServerError, "Error in test API.", nil, nil)
			return
		}
		cards := utils.HotelCards(hotels, utils.MediaBaseFromRequest(ctx.Request))
		utils.ChatReply(ctx, http.StatusOK, fmt.Sprintf("Found %d hotels for testing.", len(cards.Cards)), nil, cards)

	case "test_packages":
		packages, err := c.Catalog.ListPackages(reqCtx, testListLimit)
		if err != nil {
			zap.L().Error("test api packages", zap.Error(err))
			utils.ChatReply(ctx, http.StatusInternalServerError, "Error in test API.", nil, nil)
			return
		}
		buttons := make([]utils.Button, 0, len(packages))
		for _, p := range packages {
			buttons = append(buttons, utils.PackageButton(p))
		}
		utils.ChatReply(ctx, http.StatusOK, "Available travel packages:", buttons, nil)

	case "test_rasa":
		messages, err := c.DialogueTest.Send(reqCtx, senderID(ctx), "hello")
		if err != nil {
			zap.L().Error("dialogue engine error in test api", zap.Error(err))
			utils.ChatReply(ctx, http.StatusBadGateway, msgDialogueFailure, nil, nil)
			return
		}
		reply := services.Aggregate(messages, "Rasa responded, but no text was returned.")
		utils.ChatReply(ctx, http.StatusOK, "Rasa test response: "+reply.Text, []utils.Button{
			{Title: "Test Rasa Again", Payload: "test_rasa"},
			{Title: "Back to Chat", Payload: "/start"},
		}, nil)

	default:
		now := time.Now().Format("2006-01-02 15:04:05")
		utils.ChatReply(ctx, http.StatusOK, fmt.Sprintf("Test API received: %s at %s", message, now), []utils.Button{
			{Title: "Test Hotels", Payload: "test_hotels"},
			{Title: "Test Packages", Payload: "test_packages"},
			{Title: "Test Rasa", Payload: "test_rasa"},
		}, nil)
	}
}

// ClearChat deletes the caller's history.
// POST /clear_chat
func (c *ChatController) ClearChat(ctx *gin.Context) {
	userID, username, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.JSONError(ctx, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}
	n, err := c.Messages.ClearForUser(ctx.Request.Context(), userID)
	if err != nil {
		zap.L().Error("clear chat failed", zap.Uint("user_id", userID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Could not clear chat history."})
		return
	}
	zap.L().Info("chat history cleared", zap.String("username", username), zap.Int64("deleted", n))
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Chat history cleared."})
}
