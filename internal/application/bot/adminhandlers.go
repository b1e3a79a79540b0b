package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kursly/internal/domain/video"
	"kursly/internal/infrastructure/cache"
	"kursly/internal/infrastructure/telegram"
	"kursly/internal/shared/biztime"
	"kursly/internal/shared/goroutine"
	"kursly/internal/shared/logger"
)

// Dialog steps for the admin forms.
const (
	stepPlanName   = "plan_name"
	stepPlanDays   = "plan_days"
	stepPlanPrice  = "plan_price"
	stepVideoFile  = "video_file"
	stepVideoTitle = "video_title"
	stepBroadcast  = "broadcast"
)

// broadcastPause throttles the send loop to stay under Telegram's ~30
// messages per second bot limit with margin.
const broadcastPause = 50 * time.Millisecond

// recentUsersLimit caps the admin user list to one readable message.
const recentUsersLimit = 30

func (h *Handler) handleAdminCallback(ctx context.Context, query *telegram.CallbackQuery) error {
	userID := query.From.ID
	action := strings.TrimPrefix(query.Data, "admin:")
	_ = h.deps.Bot.AnswerCallbackQuery(query.ID, "", false)

	switch action {
	case "stats":
		return h.handleStats(ctx, userID)
	case "plans":
		return h.handleAdminPlanList(ctx, userID)
	case "users":
		return h.handleAdminUserList(ctx, userID)
	case "addplan":
		if err := h.deps.Dialogs.Set(ctx, userID, &cache.DialogState{Step: stepPlanName}); err != nil {
			return fmt.Errorf("failed to start add-plan dialog: %w", err)
		}
		return h.deps.Bot.SendMessage(userID, msgAskPlanName)
	case "addvideo":
		if err := h.deps.Dialogs.Set(ctx, userID, &cache.DialogState{Step: stepVideoFile}); err != nil {
			return fmt.Errorf("failed to start add-video dialog: %w", err)
		}
		return h.deps.Bot.SendMessage(userID, msgAskVideoFile)
	case "broadcast":
		if err := h.deps.Dialogs.Set(ctx, userID, &cache.DialogState{Step: stepBroadcast}); err != nil {
			return fmt.Errorf("failed to start broadcast dialog: %w", err)
		}
		return h.deps.Bot.SendMessage(userID, msgAskBroadcast)
	default:
		h.deps.Logger.Warnw("unknown admin callback action", "action", action)
		return nil
	}
}

// handleAdminDialog advances a multi-step admin form by one answer.
func (h *Handler) handleAdminDialog(ctx context.Context, msg *telegram.Message, state *cache.DialogState) error {
	userID := msg.From.ID
	text := strings.TrimSpace(msg.Text)
	if state.Data == nil {
		state.Data = make(map[string]string)
	}

	switch state.Step {
	case stepPlanName:
		if text == "" {
			return h.deps.Bot.SendMessage(userID, msgAskPlanName)
		}
		state.Data["name"] = text
		state.Step = stepPlanDays
		if err := h.deps.Dialogs.Set(ctx, userID, state); err != nil {
			return err
		}
		return h.deps.Bot.SendMessage(userID, msgAskPlanDays)

	case stepPlanDays:
		days, err := strconv.Atoi(text)
		if err != nil || days < 0 {
			return h.deps.Bot.SendMessage(userID, msgInvalidNumber)
		}
		state.Data["days"] = strconv.Itoa(days)
		state.Step = stepPlanPrice
		if err := h.deps.Dialogs.Set(ctx, userID, state); err != nil {
			return err
		}
		return h.deps.Bot.SendMessage(userID, msgAskPlanPrice)

	case stepPlanPrice:
		price, err := strconv.ParseInt(text, 10, 64)
		if err != nil || price <= 0 {
			return h.deps.Bot.SendMessage(userID, msgInvalidNumber)
		}
		return h.finishAddPlan(ctx, userID, state, price)

	case stepVideoFile:
		if msg.Video == nil {
			return h.deps.Bot.SendMessage(userID, msgExpectedVideo)
		}
		state.Data["file_id"] = msg.Video.FileID
		state.Step = stepVideoTitle
		if err := h.deps.Dialogs.Set(ctx, userID, state); err != nil {
			return err
		}
		return h.deps.Bot.SendMessage(userID, msgAskVideoTitle)

	case stepVideoTitle:
		if text == "" {
			return h.deps.Bot.SendMessage(userID, msgAskVideoTitle)
		}
		return h.finishAddVideo(ctx, userID, state, text)

	case stepBroadcast:
		if text == "" {
			return h.deps.Bot.SendMessage(userID, msgAskBroadcast)
		}
		if err := h.deps.Dialogs.Clear(ctx, userID); err != nil {
			h.deps.Logger.Warnw("failed to clear dialog state", "user_id", userID, "error", err)
		}
		return h.runBroadcast(ctx, userID, text)

	default:
		h.deps.Logger.Warnw("unknown dialog step, clearing", "user_id", userID, "step", state.Step)
		return h.deps.Dialogs.Clear(ctx, userID)
	}
}

func (h *Handler) finishAddPlan(ctx context.Context, userID int64, state *cache.DialogState, priceUnits int64) error {
	days, err := strconv.Atoi(state.Data["days"])
	if err != nil {
		return h.deps.Dialogs.Clear(ctx, userID)
	}

	// 0 days means a lifetime plan; prices are entered in whole units and
	// stored in minor units.
	var durationDays *int
	if days > 0 {
		durationDays = &days
	}

	plan, err := h.deps.CreatePlan.Execute(ctx, state.Data["name"], durationDays, priceUnits*100)
	if err != nil {
		h.deps.Logger.Errorw("failed to create plan", "error", err)
		return h.deps.Bot.SendMessage(userID, msgAdminError)
	}

	if err := h.deps.Dialogs.Clear(ctx, userID); err != nil {
		h.deps.Logger.Warnw("failed to clear dialog state", "user_id", userID, "error", err)
	}
	return h.deps.Bot.SendMessage(userID, formatPlanCreated(plan, h.deps.Config.Currency))
}

func (h *Handler) finishAddVideo(ctx context.Context, userID int64, state *cache.DialogState, title string) error {
	videos, err := h.deps.VideoRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	v, err := video.NewVideo(title, state.Data["file_id"], len(videos)+1)
	if err != nil {
		return fmt.Errorf("invalid video: %w", err)
	}
	if err := h.deps.VideoRepo.Create(ctx, v); err != nil {
		h.deps.Logger.Errorw("failed to create video", "error", err)
		return h.deps.Bot.SendMessage(userID, msgAdminError)
	}

	if err := h.deps.Dialogs.Clear(ctx, userID); err != nil {
		h.deps.Logger.Warnw("failed to clear dialog state", "user_id", userID, "error", err)
	}
	return h.deps.Bot.SendMessage(userID, fmt.Sprintf("✅ Lesson added: %s", v.Title()))
}

func (h *Handler) handleCancel(ctx context.Context, userID int64, isAdmin bool) error {
	if isAdmin {
		if err := h.deps.Dialogs.Clear(ctx, userID); err != nil {
			h.deps.Logger.Warnw("failed to clear dialog state", "user_id", userID, "error", err)
		}
	}
	return h.deps.Bot.SendMessageWithKeyboard(userID, msgDialogCancelled, mainMenuKeyboard())
}

func (h *Handler) handleStats(ctx context.Context, userID int64) error {
	now := biztime.NowUTC()

	users, err := h.deps.UserRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	activeSubs, err := h.deps.SubscriptionRepo.CountActive(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to count active subscriptions: %w", err)
	}
	payments, err := h.deps.PaymentRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count payments: %w", err)
	}
	revenue, err := h.deps.PaymentRepo.SumAmount(ctx)
	if err != nil {
		return fmt.Errorf("failed to sum payments: %w", err)
	}

	return h.deps.Bot.SendMessage(userID, formatStats(users, activeSubs, payments, revenue, h.deps.Config.Currency, now))
}

func (h *Handler) handleAdminPlanList(ctx context.Context, userID int64) error {
	plans, err := h.deps.ListPlans.Execute(ctx)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		return h.deps.Bot.SendMessage(userID, msgNoPlans)
	}

	var b strings.Builder
	b.WriteString("📦 <b>Plans</b>\n")
	for _, p := range plans {
		fmt.Fprintf(&b, "\n#%d %s (%s)", p.ID(), formatPlanLabel(p, h.deps.Config.Currency), formatPlanDuration(p))
	}
	return h.deps.Bot.SendMessage(userID, b.String())
}

func (h *Handler) handleAdminUserList(ctx context.Context, userID int64) error {
	users, err := h.deps.UserRepo.ListRecent(ctx, recentUsersLimit)
	if err != nil {
		return fmt.Errorf("failed to list recent users: %w", err)
	}
	total, err := h.deps.UserRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if len(users) == 0 {
		return h.deps.Bot.SendMessage(userID, "No users yet.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👥 <b>Users</b> (%d total, last %d)\n", total, len(users))
	for _, u := range users {
		name := u.FullName()
		if u.Username() != "" {
			name = "@" + u.Username()
		}
		fmt.Fprintf(&b, "\n%d — %s, joined %s",
			u.ID(), name, biztime.FormatInBizTimezone(u.CreatedAt(), dateLayout))
	}
	return h.deps.Bot.SendMessage(userID, b.String())
}

// runBroadcast hands the delivery loop to a background goroutine so the
// polling worker that received the admin message is freed immediately. The
// admin gets a start confirmation now and the report when the loop ends.
func (h *Handler) runBroadcast(ctx context.Context, adminID int64, text string) error {
	ids, err := h.deps.UserRepo.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users for broadcast: %w", err)
	}

	goroutine.SafeGo(h.deps.Logger, "broadcast", func() {
		delivered, blocked, failed := deliverBroadcast(ctx, ids, text, h.deps.Bot.SendMessage, broadcastPause, h.deps.Logger)
		h.deps.Logger.Infow("broadcast finished",
			"delivered", delivered,
			"blocked", blocked,
			"failed", failed,
		)
		if err := h.deps.Bot.SendMessage(adminID, formatBroadcastReport(delivered, blocked, failed)); err != nil {
			h.deps.Logger.Warnw("failed to send broadcast report", "admin_id", adminID, "error", err)
		}
	})

	return h.deps.Bot.SendMessage(adminID, formatBroadcastStarted(len(ids)))
}

// deliverBroadcast sends the text to every ID. Blocked bots and dead chats
// are counted, not retried; a 429 waits out the advised pause once. Context
// cancellation stops the loop between sends.
func deliverBroadcast(
	ctx context.Context,
	ids []int64,
	text string,
	send func(chatID int64, text string) error,
	pause time.Duration,
	log logger.Interface,
) (delivered, blocked, failed int) {
	for _, id := range ids {
		if ctx.Err() != nil {
			return
		}

		err := send(id, text)
		if telegram.IsRetryAfter(err) {
			time.Sleep(time.Duration(telegram.GetRetryAfter(err)) * time.Second)
			err = send(id, text)
		}

		switch {
		case err == nil:
			delivered++
		case telegram.IsBotBlocked(err):
			blocked++
		default:
			failed++
			log.Warnw("broadcast delivery failed", "user_id", id, "error", err)
		}

		time.Sleep(pause)
	}
	return
}
