package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
	"github.com/yourusername/trivia-quiz/internal/service"
)

const (
	cmdStart      = "start"
	cmdHelp       = "help"
	cmdCategories = "categories"
	cmdQuiz       = "quiz"
	cmdNext       = "next"
	cmdStop       = "stop"

	callbackAnswer = "answer:"
	callbackNext   = "next"
	callbackStop   = "stop"
)

// Sender: часть tgbotapi.BotAPI, которой пользуется бот
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot ведёт викторину в Telegram: одна серверная сессия на чат
type Bot struct {
	api        Sender
	quiz       *service.QuizService
	questions  *service.QuestionService
	categories *service.CategoryService

	mu       sync.Mutex
	sessions map[int64]string // chatID → ID сессии викторины
}

// New создает бота поверх сервисов викторины
func New(api Sender, quiz *service.QuizService, questions *service.QuestionService, categories *service.CategoryService) *Bot {
	return &Bot{
		api:        api,
		quiz:       quiz,
		questions:  questions,
		categories: categories,
		sessions:   make(map[int64]string),
	}
}

// Run обрабатывает обновления, пока не закроется канал или не отменится ctx
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(update)
		}
	}
}

// HandleUpdate обрабатывает одно обновление
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	case update.Message != nil:
		b.sendMessage(update.Message.Chat.ID, "Не понимаю. Список команд: /help")
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case cmdStart, cmdHelp:
		b.sendHelp(chatID)
	case cmdCategories:
		b.sendCategories(chatID)
	case cmdQuiz:
		b.startQuiz(chatID, msg.CommandArguments())
	case cmdNext:
		b.nextQuestion(chatID)
	case cmdStop:
		b.stopQuiz(chatID)
	default:
		b.sendMessage(chatID, "Неизвестная команда. Список команд: /help")
	}
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.Printf("[Bot] Error answering callback: %v", err)
	}
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	switch data := callback.Data; {
	case strings.HasPrefix(data, callbackAnswer):
		b.revealAnswer(chatID, strings.TrimPrefix(data, callbackAnswer))
	case data == callbackNext:
		b.nextQuestion(chatID)
	case data == callbackStop:
		b.stopQuiz(chatID)
	default:
		b.sendMessage(chatID, "Неизвестная команда")
	}
}

func (b *Bot) sendHelp(chatID int64) {
	b.sendMessage(chatID, strings.Join([]string{
		"Викторина без повторов вопросов.",
		"",
		"/categories - список категорий",
		"/quiz [ID категории|all] - начать викторину",
		"/next - следующий вопрос",
		"/stop - закончить викторину",
		"/help - эта справка",
	}, "\n"))
}

func (b *Bot) sendCategories(chatID int64) {
	categories, err := b.categories.List()
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.sendMessage(chatID, formatCategories(categories))
}

// formatCategories выводит категории по возрастанию ID
func formatCategories(categories entity.CategoryMap) string {
	ids := make([]uint, 0, len(categories))
	for id := range categories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var sb strings.Builder
	sb.WriteString("Категории:\n")
	for _, id := range ids {
		fmt.Fprintf(&sb, "%d. %s\n", id, categories[id])
	}
	sb.WriteString("\nНачать: /quiz <ID> или /quiz all")
	return sb.String()
}

func (b *Bot) startQuiz(chatID int64, args string) {
	filter, err := entity.ParseCategoryFilter(strings.TrimSpace(args))
	if err != nil {
		b.sendMessage(chatID, "Категория указывается числом или all, например: /quiz 1")
		return
	}

	// Новая викторина заменяет текущую
	if previous, ok := b.session(chatID); ok {
		if err := b.quiz.EndSession(previous); err != nil {
			log.Printf("[Bot] Не удалось завершить сессию %s: %v", previous, err)
		}
	}

	session, err := b.quiz.StartSession(filter)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.setSession(chatID, session.ID)

	b.nextQuestion(chatID)
}

func (b *Bot) nextQuestion(chatID int64) {
	sessionID, ok := b.session(chatID)
	if !ok {
		b.sendMessage(chatID, "Викторина не начата. Начать: /quiz all")
		return
	}

	result, err := b.quiz.NextInSession(sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			b.clearSession(chatID)
			b.sendMessage(chatID, "Сессия истекла. Начните заново: /quiz all")
			return
		}
		b.replyError(chatID, err)
		return
	}

	if result.Exhausted() {
		asked := 0
		if session, err := b.quiz.GetSession(sessionID); err == nil {
			asked = len(session.AskedIDs)
		}
		b.finish(chatID, sessionID)
		b.sendMessage(chatID, fmt.Sprintf("🏁 Вопросы закончились! Всего вопросов: %d.\nЕщё раз: /quiz all", asked))
		return
	}

	b.sendQuestion(chatID, result.Question)
}

func (b *Bot) sendQuestion(chatID int64, q *entity.FormattedQuestion) {
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("❓ %s\n\nСложность: %d", q.Question, q.Difficulty))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Показать ответ", callbackAnswer+strconv.FormatUint(uint64(q.ID), 10)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➡️ Дальше", callbackNext),
			tgbotapi.NewInlineKeyboardButtonData("⏹ Закончить", callbackStop),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("[Bot] Error sending question: %v", err)
	}
}

func (b *Bot) revealAnswer(chatID int64, rawID string) {
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		return
	}
	question, err := b.questions.Get(uint(id))
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("💡 Ответ: %s", question.Answer))
}

func (b *Bot) stopQuiz(chatID int64) {
	sessionID, ok := b.session(chatID)
	if !ok {
		b.sendMessage(chatID, "Викторина не начата.")
		return
	}
	b.finish(chatID, sessionID)
	b.sendMessage(chatID, "Викторина завершена. Начать заново: /quiz all")
}

func (b *Bot) finish(chatID int64, sessionID string) {
	b.clearSession(chatID)
	if err := b.quiz.EndSession(sessionID); err != nil {
		log.Printf("[Bot] Не удалось завершить сессию %s: %v", sessionID, err)
	}
}

func (b *Bot) replyError(chatID int64, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		b.sendMessage(chatID, "Не найдено. Список категорий: /categories")
		return
	}
	log.Printf("[Bot] Ошибка для чата %d: %v", chatID, err)
	b.sendMessage(chatID, "Что-то пошло не так, попробуйте позже.")
}

func (b *Bot) sendMessage(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("[Bot] Error sending message: %v", err)
	}
}

func (b *Bot) session(chatID int64) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.sessions[chatID]
	return id, ok
}

func (b *Bot) setSession(chatID int64, sessionID string) {
	b.mu.Lock()
	b.sessions[chatID] = sessionID
	b.mu.Unlock()
}

func (b *Bot) clearSession(chatID int64) {
	b.mu.Lock()
	delete(b.sessions, chatID)
	b.mu.Unlock()
}
