package bot

import (
	"context"
	"fmt"

	"kursly/internal/domain/user"
	"kursly/internal/infrastructure/telegram"
)

func (h *Handler) handleStart(ctx context.Context, msg *telegram.Message) error {
	from := msg.From

	u, err := user.NewUser(from.ID, from.Username, from.FullName())
	if err != nil {
		return fmt.Errorf("invalid telegram user: %w", err)
	}
	if err := h.deps.UserRepo.Upsert(ctx, u); err != nil {
		// Registration failure should not make the bot mute
		h.deps.Logger.Errorw("failed to upsert user on /start", "user_id", from.ID, "error", err)
	}

	if !h.deps.Config.IsAdmin(from.ID) {
		unsatisfied, err := h.deps.Gate.Execute(ctx, from.ID)
		if err != nil {
			return fmt.Errorf("gate check failed: %w", err)
		}
		if len(unsatisfied) > 0 {
			return h.deps.Bot.SendMessageWithInlineKeyboard(from.ID, msgGatePrompt, gateKeyboard(unsatisfied))
		}
	}

	return h.deps.Bot.SendMessageWithKeyboard(from.ID, msgWelcome, mainMenuKeyboard())
}

// handleGateCheck re-runs the channel gate when the user presses "I joined".
func (h *Handler) handleGateCheck(ctx context.Context, query *telegram.CallbackQuery) error {
	userID := query.From.ID

	unsatisfied, err := h.deps.Gate.Execute(ctx, userID)
	if err != nil {
		return fmt.Errorf("gate check failed: %w", err)
	}
	if len(unsatisfied) > 0 {
		return h.deps.Bot.AnswerCallbackQuery(query.ID, msgGateStillMissing, true)
	}

	_ = h.deps.Bot.AnswerCallbackQuery(query.ID, "", false)
	return h.deps.Bot.SendMessageWithKeyboard(userID, msgGatePassed+"\n\n"+msgWelcome, mainMenuKeyboard())
}

func (h *Handler) handlePlans(ctx context.Context, userID int64) error {
	plans, err := h.deps.ListPlans.Execute(ctx)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		return h.deps.Bot.SendMessage(userID, msgNoPlans)
	}

	return h.deps.Bot.SendMessageWithInlineKeyboard(userID, msgChoosePlan, plansKeyboard(plans, h.deps.Config.Currency))
}

// handleBuy sends a Telegram Payments invoice for the chosen plan.
func (h *Handler) handleBuy(ctx context.Context, userID int64, planID uint) error {
	plan, err := h.deps.PlanRepo.GetByID(ctx, planID)
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}
	if plan == nil || !plan.IsActive() {
		return h.deps.Bot.SendMessage(userID, msgNoPlans)
	}

	return h.deps.Bot.SendInvoice(
		userID,
		plan.Name(),
		fmt.Sprintf("Course access, %s", formatPlanDuration(plan)),
		fmt.Sprintf("plan:%d", plan.ID()),
		h.deps.Config.ProviderToken,
		h.deps.Config.Currency,
		[]telegram.LabeledPrice{{Label: plan.Name(), Amount: plan.Price()}},
	)
}

func (h *Handler) handleMySubscription(ctx context.Context, userID int64) error {
	sub, err := h.deps.Resolve.Execute(ctx, userID)
	if err != nil {
		return err
	}
	if sub == nil {
		return h.deps.Bot.SendMessage(userID, msgNoSubscription)
	}
	return h.deps.Bot.SendMessage(userID, formatSubscriptionStatus(sub))
}

// handleGroupAccess re-issues a single-use invite link for entitled users.
func (h *Handler) handleGroupAccess(ctx context.Context, userID int64) error {
	sub, err := h.deps.Resolve.Execute(ctx, userID)
	if err != nil {
		return err
	}
	if sub == nil {
		return h.deps.Bot.SendMessage(userID, msgNotEntitledGroup)
	}

	inviteLink, err := h.deps.Grant.Execute(ctx, userID)
	if err != nil {
		h.deps.Logger.Errorw("failed to issue invite link", "user_id", userID, "error", err)
		return h.deps.Bot.SendMessage(userID, msgInviteFailed)
	}

	return h.deps.Bot.SendMessage(userID, formatInvite(inviteLink))
}

// handleVideos lists one page of lessons for entitled users.
func (h *Handler) handleVideos(ctx context.Context, userID int64, page int) error {
	sub, err := h.deps.Resolve.Execute(ctx, userID)
	if err != nil {
		return err
	}
	if sub == nil {
		return h.deps.Bot.SendMessage(userID, msgNotEntitledVideos)
	}

	videos, err := h.deps.VideoRepo.ListActive(ctx)
	if err != nil {
		return err
	}
	if len(videos) == 0 {
		return h.deps.Bot.SendMessage(userID, msgNoVideos)
	}

	text := fmt.Sprintf("🎬 Lessons (page %d of %d):", page+1, (len(videos)+videosPerPage-1)/videosPerPage)
	return h.deps.Bot.SendMessageWithInlineKeyboard(userID, text, videosKeyboard(videos, page))
}

// handleVideosPage flips pages in place by editing the original message.
func (h *Handler) handleVideosPage(ctx context.Context, query *telegram.CallbackQuery, page int) error {
	userID := query.From.ID

	sub, err := h.deps.Resolve.Execute(ctx, userID)
	if err != nil {
		return err
	}
	if sub == nil {
		return h.deps.Bot.SendMessage(userID, msgNotEntitledVideos)
	}

	videos, err := h.deps.VideoRepo.ListActive(ctx)
	if err != nil {
		return err
	}
	if len(videos) == 0 {
		return h.deps.Bot.SendMessage(userID, msgNoVideos)
	}
	if page*videosPerPage >= len(videos) {
		page = 0
	}

	text := fmt.Sprintf("🎬 Lessons (page %d of %d):", page+1, (len(videos)+videosPerPage-1)/videosPerPage)
	if query.Message != nil && query.Message.Chat != nil {
		return h.deps.Bot.EditMessageWithInlineKeyboard(
			query.Message.Chat.ID, query.Message.MessageID, text, videosKeyboard(videos, page))
	}
	return h.deps.Bot.SendMessageWithInlineKeyboard(userID, text, videosKeyboard(videos, page))
}

// handleWatchVideo sends the lesson with forwarding disabled.
func (h *Handler) handleWatchVideo(ctx context.Context, userID int64, videoID uint) error {
	sub, err := h.deps.Resolve.Execute(ctx, userID)
	if err != nil {
		return err
	}
	if sub == nil {
		return h.deps.Bot.SendMessage(userID, msgNotEntitledVideos)
	}

	v, err := h.deps.VideoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if v == nil || !v.IsActive() {
		return h.deps.Bot.SendMessage(userID, msgNoVideos)
	}

	_ = h.deps.Bot.SendChatAction(userID, "upload_video")
	return h.deps.Bot.SendVideo(userID, v.FileID(), v.Title(), true)
}
