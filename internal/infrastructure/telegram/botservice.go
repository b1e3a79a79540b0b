package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	sharedConfig "kursly/internal/shared/config"
)

// BotService provides Telegram Bot API operations
type BotService struct {
	config      sharedConfig.TelegramConfig
	httpClient  *http.Client
	baseURL     string
	botUsername string // Cached bot username from getMe
}

// NewBotService creates a new Telegram bot service
func NewBotService(config sharedConfig.TelegramConfig) *BotService {
	s := &BotService{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: fmt.Sprintf("https://api.telegram.org/bot%s", config.BotToken),
	}
	// Fetch and cache bot username on initialization
	if config.BotToken != "" {
		_ = s.fetchBotUsername()
	}
	return s
}

// DeleteWebhook removes any configured webhook so long polling can take over
func (s *BotService) DeleteWebhook() error {
	url := fmt.Sprintf("%s/deleteWebhook", s.baseURL)
	return s.makeRequest(url, nil)
}

// BotCommand represents a bot command for the command menu
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// SetMyCommands sets the list of bot commands shown in the command menu
func (s *BotService) SetMyCommands(commands []BotCommand) error {
	url := fmt.Sprintf("%s/setMyCommands", s.baseURL)
	body := map[string]any{
		"commands": commands,
	}
	return s.makeRequest(url, body)
}

// SetMyCommandsForChat sets commands visible only in a specific chat
func (s *BotService) SetMyCommandsForChat(chatID int64, commands []BotCommand) error {
	url := fmt.Sprintf("%s/setMyCommands", s.baseURL)
	body := map[string]any{
		"commands": commands,
		"scope": map[string]any{
			"type":    "chat",
			"chat_id": chatID,
		},
	}
	return s.makeRequest(url, body)
}

// GetUpdatesWithContext retrieves updates using long polling with context support.
// The context can be used to cancel the long polling request for graceful shutdown.
func (s *BotService) GetUpdatesWithContext(ctx context.Context, offset int64, timeout int) ([]Update, error) {
	apiURL := fmt.Sprintf("%s/getUpdates", s.baseURL)

	body := map[string]any{
		"timeout":         timeout,
		"allowed_updates": []string{"message", "callback_query", "pre_checkout_query", "chat_join_request"},
	}
	if offset > 0 {
		body["offset"] = offset
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	// Create a client with extended timeout for long polling
	client := &http.Client{
		Timeout: time.Duration(timeout+10) * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		apiResponse
		Result []Update `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !result.OK {
		return nil, result.apiError()
	}

	return result.Result, nil
}

// SendMessage sends a plain text message to a chat (HTML format)
func (s *BotService) SendMessage(chatID int64, text string) error {
	url := fmt.Sprintf("%s/sendMessage", s.baseURL)
	body := map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	}

	return s.makeRequest(url, body)
}

// SendMessageWithKeyboard sends a message with a reply keyboard (HTML format)
func (s *BotService) SendMessageWithKeyboard(chatID int64, text string, keyboard any) error {
	url := fmt.Sprintf("%s/sendMessage", s.baseURL)
	body := map[string]any{
		"chat_id":      chatID,
		"text":         text,
		"parse_mode":   "HTML",
		"reply_markup": keyboard,
	}

	return s.makeRequest(url, body)
}

// SendMessageWithInlineKeyboard sends a message with an inline keyboard (HTML format)
func (s *BotService) SendMessageWithInlineKeyboard(chatID int64, text string, keyboard any) error {
	url := fmt.Sprintf("%s/sendMessage", s.baseURL)
	body := map[string]any{
		"chat_id":      chatID,
		"text":         text,
		"parse_mode":   "HTML",
		"reply_markup": keyboard,
	}

	return s.makeRequest(url, body)
}

// EditMessageText edits the text of a message (HTML format)
func (s *BotService) EditMessageText(chatID int64, messageID int64, text string) error {
	url := fmt.Sprintf("%s/editMessageText", s.baseURL)
	body := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
		"parse_mode": "HTML",
	}

	return s.makeRequest(url, body)
}

// EditMessageWithInlineKeyboard edits a message with an inline keyboard (HTML format)
func (s *BotService) EditMessageWithInlineKeyboard(chatID int64, messageID int64, text string, keyboard any) error {
	url := fmt.Sprintf("%s/editMessageText", s.baseURL)
	body := map[string]any{
		"chat_id":      chatID,
		"message_id":   messageID,
		"text":         text,
		"parse_mode":   "HTML",
		"reply_markup": keyboard,
	}

	return s.makeRequest(url, body)
}

// EditMessageReplyMarkup edits only the inline keyboard of a message
func (s *BotService) EditMessageReplyMarkup(chatID int64, messageID int64, keyboard any) error {
	url := fmt.Sprintf("%s/editMessageReplyMarkup", s.baseURL)
	body := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
	}
	if keyboard != nil {
		body["reply_markup"] = keyboard
	}

	return s.makeRequest(url, body)
}

// AnswerCallbackQuery answers a callback query from an inline keyboard
func (s *BotService) AnswerCallbackQuery(callbackQueryID string, text string, showAlert bool) error {
	url := fmt.Sprintf("%s/answerCallbackQuery", s.baseURL)
	body := map[string]any{
		"callback_query_id": callbackQueryID,
	}
	if text != "" {
		body["text"] = text
	}
	if showAlert {
		body["show_alert"] = true
	}

	return s.makeRequest(url, body)
}

// SendChatAction sends a chat action (e.g., "typing") to a chat
func (s *BotService) SendChatAction(chatID int64, action string) error {
	url := fmt.Sprintf("%s/sendChatAction", s.baseURL)
	body := map[string]any{
		"chat_id": chatID,
		"action":  action,
	}

	return s.makeRequest(url, body)
}

// SendVideo sends a video by its Telegram file ID. protect_content blocks
// forwarding and saving on the receiving client.
func (s *BotService) SendVideo(chatID int64, fileID string, caption string, protectContent bool) error {
	url := fmt.Sprintf("%s/sendVideo", s.baseURL)
	body := map[string]any{
		"chat_id":         chatID,
		"video":           fileID,
		"protect_content": protectContent,
	}
	if caption != "" {
		body["caption"] = caption
		body["parse_mode"] = "HTML"
	}

	return s.makeRequest(url, body)
}

// SendInvoice sends a Telegram Payments invoice. Amounts are in minor units
// of the currency.
func (s *BotService) SendInvoice(chatID int64, title, description, payload, providerToken, currency string, prices []LabeledPrice) error {
	url := fmt.Sprintf("%s/sendInvoice", s.baseURL)
	body := map[string]any{
		"chat_id":        chatID,
		"title":          title,
		"description":    description,
		"payload":        payload,
		"provider_token": providerToken,
		"currency":       currency,
		"prices":         prices,
	}

	return s.makeRequest(url, body)
}

// AnswerPreCheckoutQuery confirms or rejects a checkout. Telegram requires an
// answer within 10 seconds or the payment fails on the client.
func (s *BotService) AnswerPreCheckoutQuery(preCheckoutQueryID string, ok bool, errorMessage string) error {
	url := fmt.Sprintf("%s/answerPreCheckoutQuery", s.baseURL)
	body := map[string]any{
		"pre_checkout_query_id": preCheckoutQueryID,
		"ok":                    ok,
	}
	if !ok && errorMessage != "" {
		body["error_message"] = errorMessage
	}

	return s.makeRequest(url, body)
}

// GetChatMember returns the membership status of a user in a chat.
// chatID accepts an int64 chat ID or a "@username" string.
func (s *BotService) GetChatMember(chatID any, userID int64) (*ChatMember, error) {
	url := fmt.Sprintf("%s/getChatMember", s.baseURL)
	body := map[string]any{
		"chat_id": chatID,
		"user_id": userID,
	}

	var member ChatMember
	if err := s.makeRequestInto(url, body, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// BanChatMember bans a user from a chat until the given unix timestamp.
func (s *BotService) BanChatMember(chatID, userID int64, untilDate int64) error {
	url := fmt.Sprintf("%s/banChatMember", s.baseURL)
	body := map[string]any{
		"chat_id": chatID,
		"user_id": userID,
	}
	if untilDate > 0 {
		body["until_date"] = untilDate
	}

	return s.makeRequest(url, body)
}

// UnbanChatMember lifts a ban. only_if_banned keeps members who were never
// banned from being kicked out as a side effect.
func (s *BotService) UnbanChatMember(chatID, userID int64, onlyIfBanned bool) error {
	url := fmt.Sprintf("%s/unbanChatMember", s.baseURL)
	body := map[string]any{
		"chat_id":        chatID,
		"user_id":        userID,
		"only_if_banned": onlyIfBanned,
	}

	return s.makeRequest(url, body)
}

// CreateChatInviteLink creates a fresh invite link for the chat.
// memberLimit of 1 makes the link single-use.
func (s *BotService) CreateChatInviteLink(chatID int64, memberLimit int) (*ChatInviteLink, error) {
	url := fmt.Sprintf("%s/createChatInviteLink", s.baseURL)
	body := map[string]any{
		"chat_id": chatID,
	}
	if memberLimit > 0 {
		body["member_limit"] = memberLimit
	}

	var link ChatInviteLink
	if err := s.makeRequestInto(url, body, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// ApproveChatJoinRequest approves a pending join request
func (s *BotService) ApproveChatJoinRequest(chatID, userID int64) error {
	url := fmt.Sprintf("%s/approveChatJoinRequest", s.baseURL)
	body := map[string]any{
		"chat_id": chatID,
		"user_id": userID,
	}

	return s.makeRequest(url, body)
}

// DeclineChatJoinRequest declines a pending join request
func (s *BotService) DeclineChatJoinRequest(chatID, userID int64) error {
	url := fmt.Sprintf("%s/declineChatJoinRequest", s.baseURL)
	body := map[string]any{
		"chat_id": chatID,
		"user_id": userID,
	}

	return s.makeRequest(url, body)
}

// apiResponse represents a Telegram API response envelope
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after,omitempty"`
	} `json:"parameters,omitempty"`
}

func (r *apiResponse) apiError() error {
	apiErr := &APIError{
		ErrorCode:   r.ErrorCode,
		Description: r.Description,
	}
	if r.Parameters != nil {
		apiErr.RetryAfter = r.Parameters.RetryAfter
	}
	return apiErr
}

// getMeResponse represents the response from getMe API
type getMeResponse struct {
	apiResponse
	Result struct {
		ID        int64  `json:"id"`
		IsBot     bool   `json:"is_bot"`
		FirstName string `json:"first_name"`
		Username  string `json:"username"`
	} `json:"result"`
}

// fetchBotUsername fetches and caches the bot username from Telegram API
func (s *BotService) fetchBotUsername() error {
	url := fmt.Sprintf("%s/getMe", s.baseURL)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var result getMeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !result.OK {
		return result.apiError()
	}

	s.botUsername = result.Result.Username
	return nil
}

// GetBotUsername returns the cached bot username
func (s *BotService) GetBotUsername() string {
	return s.botUsername
}

// GetBotLink returns the Telegram bot link (https://t.me/username)
func (s *BotService) GetBotLink() string {
	if s.botUsername == "" {
		return ""
	}
	return fmt.Sprintf("https://t.me/%s", s.botUsername)
}

func (s *BotService) makeRequest(url string, body map[string]any) error {
	return s.makeRequestInto(url, body, nil)
}

// makeRequestInto performs the API call and, when out is non-nil, decodes the
// result field into it.
func (s *BotService) makeRequestInto(url string, body map[string]any, out any) error {
	var req *http.Request
	var err error

	if body != nil {
		jsonBody, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal request body: %w", marshalErr)
		}
		req, err = http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonBody))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequest(http.MethodPost, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		apiResponse
		Result json.RawMessage `json:"result,omitempty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !result.OK {
		return result.apiError()
	}

	if out != nil && len(result.Result) > 0 {
		if err := json.Unmarshal(result.Result, out); err != nil {
			return fmt.Errorf("failed to decode result: %w", err)
		}
	}

	return nil
}
