package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"krishimitra/internal/domain/crop"
	"krishimitra/internal/domain/disease"
	"krishimitra/internal/domain/irrigation"
	"krishimitra/internal/metrics"
	"krishimitra/pkg/errors"
	"krishimitra/pkg/logger"
	"krishimitra/pkg/telegram"
)

const welcomeText = `🌿 Welcome to KrishiMitra!

/disease – detect plant disease from a leaf photo
/crop – get a crop recommendation for your soil
/irrigation – check whether to turn irrigation ON
/status – model status
/cancel – abandon the current form`

// Handler is the interactive-form surface. It drives guided per-chat form
// sessions and calls the same domain services as the REST handlers.
type Handler struct {
	bot        *telegram.Client
	disease    *disease.Service
	crop       *crop.Service
	irrigation *irrigation.Service
	log        *logger.Logger
	startTime  time.Time

	mu        sync.Mutex
	sessions  map[int64]*session
	lastCrops map[int64]*crop.Input // last completed crop form, for the fertilizer follow-up
}

// NewHandler creates the bot update handler.
func NewHandler(
	bot *telegram.Client,
	diseaseSvc *disease.Service,
	cropSvc *crop.Service,
	irrigationSvc *irrigation.Service,
	log *logger.Logger,
) *Handler {
	return &Handler{
		bot:        bot,
		disease:    diseaseSvc,
		crop:       cropSvc,
		irrigation: irrigationSvc,
		log:        log.With("component", "telegram_handler"),
		startTime:  time.Now(),
		sessions:   make(map[int64]*session),
		lastCrops:  make(map[int64]*crop.Input),
	}
}

// HandleUpdate dispatches one Telegram update.
func (h *Handler) HandleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallback(update.CallbackQuery)
		return
	}
	msg := update.Message
	if msg == nil {
		return
	}

	switch {
	case msg.IsCommand():
		h.handleCommand(msg)
	case len(msg.Photo) > 0:
		h.handlePhoto(msg)
	default:
		h.handleText(msg)
	}
}

func (h *Handler) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	metrics.RecordBotUpdate("command", nil)

	switch msg.Command() {
	case "start", "help":
		h.reply(chatID, welcomeText)
	case "status":
		h.reply(chatID, h.statusText())
	case "disease":
		h.clearSession(chatID)
		h.reply(chatID, "📷 Send me a clear photo of the plant leaf.")
	case "crop":
		h.startForm(chatID, newSession("crop", cropFormFields()))
	case "irrigation":
		h.startForm(chatID, newSession("irrigation", irrigationFormFields()))
	case "cancel":
		h.clearSession(chatID)
		h.reply(chatID, "Form cancelled.")
	default:
		h.reply(chatID, "Unknown command. Try /help.")
	}
}

// handlePhoto runs disease detection on the largest size of an uploaded
// photo.
func (h *Handler) handlePhoto(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	largest := msg.Photo[len(msg.Photo)-1]
	data, err := h.bot.GetFileData(ctx, largest.FileID)
	if err != nil {
		metrics.RecordBotUpdate("photo", err)
		h.log.Errorf("failed to download photo: %v", err)
		h.reply(chatID, "Could not download the photo, please try again.")
		return
	}

	start := time.Now()
	prediction, err := h.disease.Predict(data)
	elapsed := time.Since(start)
	metrics.RecordBotUpdate("photo", err)
	if err != nil {
		metrics.RecordInference("disease", elapsed, 0, err)
		h.replyError(chatID, err)
		return
	}
	metrics.RecordInference("disease", elapsed, prediction.Confidence, nil)

	var sb strings.Builder
	fmt.Fprintf(&sb, "🌱 Plant: %s\n", prediction.Plant)
	if prediction.IsHealthy {
		sb.WriteString("✅ Status: healthy\n")
	} else {
		fmt.Fprintf(&sb, "🦠 Disease: %s\n", prediction.Disease)
	}
	fmt.Fprintf(&sb, "Confidence: %.1f%%\n\n%s", prediction.Confidence*100, prediction.Recommendation)
	h.reply(chatID, sb.String())
}

// handleText feeds a typed value into the chat's active form.
func (h *Handler) handleText(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	h.mu.Lock()
	sess := h.sessions[chatID]
	h.mu.Unlock()
	if sess == nil {
		h.reply(chatID, "No form in progress. Try /help.")
		return
	}

	field := sess.current()
	if len(field.enum) > 0 {
		h.reply(chatID, "Please use the buttons above to choose.")
		return
	}

	value, err := field.parse(msg.Text)
	metrics.RecordBotUpdate("form_input", err)
	if err != nil {
		h.reply(chatID, fmt.Sprintf("⚠️ %v\n%s", err, field.prompt()))
		return
	}

	h.mu.Lock()
	sess.numbers[field.name] = value
	sess.step++
	h.mu.Unlock()

	h.advance(chatID, sess)
}

// handleCallback handles enum choices and the fertilizer follow-up button.
func (h *Handler) handleCallback(cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	_ = h.bot.AnswerCallback(cb.ID, "")

	if crop, ok := strings.CutPrefix(cb.Data, "fert:"); ok {
		metrics.RecordBotUpdate("callback", nil)
		h.recommendFertilizer(chatID, crop)
		return
	}

	parts := strings.SplitN(cb.Data, ":", 3)
	if len(parts) != 3 || parts[0] != "set" {
		return
	}
	fieldName, value := parts[1], parts[2]

	h.mu.Lock()
	sess := h.sessions[chatID]
	if sess == nil || sess.done() || sess.current().name != fieldName {
		h.mu.Unlock()
		return
	}
	sess.choices[fieldName] = value
	sess.step++
	h.mu.Unlock()

	metrics.RecordBotUpdate("callback", nil)
	h.advance(chatID, sess)
}

func (h *Handler) startForm(chatID int64, sess *session) {
	h.mu.Lock()
	h.sessions[chatID] = sess
	h.mu.Unlock()
	h.promptField(chatID, sess.current())
}

// advance prompts the next field or completes the form.
func (h *Handler) advance(chatID int64, sess *session) {
	if !sess.done() {
		h.promptField(chatID, sess.current())
		return
	}

	h.clearSession(chatID)
	switch sess.form {
	case "crop":
		h.completeCropForm(chatID, sess)
	case "irrigation":
		h.completeIrrigationForm(chatID, sess)
	}
}

func (h *Handler) promptField(chatID int64, field *formField) {
	if len(field.enum) == 0 {
		h.reply(chatID, field.prompt())
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(field.enum))
	for _, option := range field.enum {
		data := fmt.Sprintf("set:%s:%s", field.name, option)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(option, data)))
	}
	err := h.bot.SendMessageWithKeyboard(chatID, field.prompt(), tgbotapi.NewInlineKeyboardMarkup(rows...))
	if err != nil {
		h.log.Errorf("failed to send keyboard: %v", err)
	}
}

func (h *Handler) completeCropForm(chatID int64, sess *session) {
	in := sess.cropInput()

	start := time.Now()
	prediction, err := h.crop.Predict(in)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordInference("crop", elapsed, 0, err)
		h.replyError(chatID, err)
		return
	}
	metrics.RecordInference("crop", elapsed, prediction.Confidence, nil)

	h.mu.Lock()
	h.lastCrops[chatID] = in
	h.mu.Unlock()

	text := fmt.Sprintf("🌾 Recommended crop: %s\nConfidence: %.1f%%",
		prediction.RecommendedCrop, prediction.Confidence*100)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("💊 Fertilizer for %s", prediction.RecommendedCrop),
				"fert:"+prediction.RecommendedCrop)))
	if err := h.bot.SendMessageWithKeyboard(chatID, text, keyboard); err != nil {
		h.log.Errorf("failed to send prediction: %v", err)
	}
}

func (h *Handler) completeIrrigationForm(chatID int64, sess *session) {
	in := sess.irrigationInput()

	start := time.Now()
	prediction, err := h.irrigation.Predict(in)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordInference("irrigation", elapsed, 0, err)
		h.replyError(chatID, err)
		return
	}
	metrics.RecordInference("irrigation", elapsed, prediction.Confidence, nil)

	icon := "🚿"
	if prediction.Status == "OFF" {
		icon = "💤"
	}
	h.reply(chatID, fmt.Sprintf("%s Irrigation: %s\nConfidence: %.1f%%\nOFF %.1f%% / ON %.1f%%\n\n%s",
		icon, prediction.Status, prediction.Confidence*100,
		prediction.Probabilities["OFF"]*100, prediction.Probabilities["ON"]*100,
		prediction.Recommendation))
}

// recommendFertilizer runs the fertilizer sub-flow with the soil values of
// the chat's last completed crop form.
func (h *Handler) recommendFertilizer(chatID int64, cropName string) {
	h.mu.Lock()
	last := h.lastCrops[chatID]
	h.mu.Unlock()
	if last == nil {
		h.reply(chatID, "Fill in the /crop form first so I know your soil conditions.")
		return
	}

	rec, err := h.crop.RecommendFertilizer(&crop.FertilizerInput{Crop: cropName, Input: *last})
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "💊 Fertilizer for %s: %s\nConfidence: %.1f%%\n",
		rec.Crop, rec.RecommendedFertilizer, rec.FertilizerConfidence*100)
	if len(rec.AlternativeFertilizers) > 0 {
		fmt.Fprintf(&sb, "Alternatives: %s\n", strings.Join(rec.AlternativeFertilizers, ", "))
	}
	fmt.Fprintf(&sb, "Tutorial: %s", rec.TutorialLink)
	h.reply(chatID, sb.String())
}

func (h *Handler) statusText() string {
	var sb strings.Builder
	sb.WriteString("📊 KrishiMitra status\n")
	fmt.Fprintf(&sb, "Uptime: %s\n", time.Since(h.startTime).Round(time.Second))
	components := []struct {
		name  string
		ready bool
	}{
		{"Disease model", h.disease.Ready()},
		{"Crop model", h.crop.Ready()},
		{"Irrigation model", h.irrigation.Ready()},
	}
	for _, c := range components {
		mark := "✅"
		if !c.ready {
			mark = "❌"
		}
		fmt.Fprintf(&sb, "%s %s\n", mark, c.name)
	}
	return sb.String()
}

func (h *Handler) clearSession(chatID int64) {
	h.mu.Lock()
	delete(h.sessions, chatID)
	h.mu.Unlock()
}

func (h *Handler) reply(chatID int64, text string) {
	if err := h.bot.SendMessage(chatID, text); err != nil {
		h.log.Errorf("failed to send message: %v", err)
	}
}

// replyError translates pipeline errors into user-facing text.
func (h *Handler) replyError(chatID int64, err error) {
	switch {
	case errors.Is(err, errors.ErrUnavailable):
		h.reply(chatID, "⚠️ This model is temporarily unavailable, please try again later.")
	case errors.Is(err, errors.ErrInvalidInput), errors.Is(err, errors.ErrNotFound):
		h.reply(chatID, fmt.Sprintf("⚠️ %v", err))
	default:
		h.log.Errorf("prediction failed: %v", err)
		h.reply(chatID, "Something went wrong, please try again.")
	}
}
