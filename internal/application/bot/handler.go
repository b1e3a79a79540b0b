package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	accessUC "kursly/internal/application/access/usecases"
	subscriptionUC "kursly/internal/application/subscription/usecases"
	"kursly/internal/domain/payment"
	"kursly/internal/domain/subscription"
	"kursly/internal/domain/user"
	"kursly/internal/domain/video"
	"kursly/internal/infrastructure/cache"
	"kursly/internal/infrastructure/telegram"
	sharedConfig "kursly/internal/shared/config"
	"kursly/internal/shared/logger"
)

// paymentProvider tags payment rows created from Telegram Payments.
const paymentProvider = "telegram"

// Deps bundles everything the update handler needs.
type Deps struct {
	Bot              *telegram.BotService
	Config           sharedConfig.TelegramConfig
	UserRepo         user.UserRepository
	VideoRepo        video.VideoRepository
	PaymentRepo      payment.PaymentRepository
	PlanRepo         subscription.PlanRepository
	SubscriptionRepo subscription.SubscriptionRepository
	Activate         *subscriptionUC.ActivateSubscriptionUseCase
	Resolve          *subscriptionUC.ResolveEntitlementUseCase
	ListPlans        *subscriptionUC.ListPlansUseCase
	CreatePlan       *subscriptionUC.CreatePlanUseCase
	Gate             *accessUC.CheckChannelGateUseCase
	Grant            *accessUC.GrantGroupAccessUseCase
	Arbitrate        *accessUC.ArbitrateJoinRequestUseCase
	Dialogs          *cache.DialogStateStore
	Logger           logger.Interface
}

// Handler routes Telegram updates to the user and admin flows. It implements
// the polling service's UpdateHandler interface.
type Handler struct {
	deps Deps
}

// NewHandler creates a new update handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// HandleUpdate processes a single Telegram update.
func (h *Handler) HandleUpdate(ctx context.Context, update *telegram.Update) error {
	switch {
	case update.PreCheckoutQuery != nil:
		return h.handlePreCheckout(ctx, update.PreCheckoutQuery)
	case update.ChatJoinRequest != nil:
		return h.handleJoinRequest(ctx, update.ChatJoinRequest)
	case update.CallbackQuery != nil:
		return h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.From != nil:
		return h.handleMessage(ctx, update.Message)
	default:
		return nil
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *telegram.Message) error {
	userID := msg.From.ID
	text := strings.TrimSpace(msg.Text)

	if msg.SuccessfulPayment != nil {
		return h.handleSuccessfulPayment(ctx, userID, msg.SuccessfulPayment)
	}

	isAdmin := h.deps.Config.IsAdmin(userID)

	// An in-progress admin dialog swallows every non-command message.
	if isAdmin && !strings.HasPrefix(text, "/") {
		state, err := h.deps.Dialogs.Get(ctx, userID)
		if err != nil {
			h.deps.Logger.Warnw("failed to load dialog state", "user_id", userID, "error", err)
		} else if state != nil {
			return h.handleAdminDialog(ctx, msg, state)
		}
	}

	switch text {
	case "/start":
		return h.handleStart(ctx, msg)
	case "/cancel":
		return h.handleCancel(ctx, userID, isAdmin)
	case "/admin":
		if !isAdmin {
			return h.deps.Bot.SendMessage(userID, msgAdminOnly)
		}
		return h.deps.Bot.SendMessageWithInlineKeyboard(userID, "🛠 Admin panel", adminMenuKeyboard())
	case btnPlans:
		return h.gated(ctx, userID, h.handlePlans)
	case btnVideos:
		return h.gated(ctx, userID, func(ctx context.Context, userID int64) error {
			return h.handleVideos(ctx, userID, 0)
		})
	case btnSubscription:
		return h.gated(ctx, userID, h.handleMySubscription)
	case btnGroupAccess:
		return h.gated(ctx, userID, h.handleGroupAccess)
	default:
		return h.deps.Bot.SendMessageWithKeyboard(userID, msgUnknown, mainMenuKeyboard())
	}
}

func (h *Handler) handleCallback(ctx context.Context, query *telegram.CallbackQuery) error {
	if query.From == nil || query.Data == "" {
		return nil
	}
	userID := query.From.ID

	if strings.HasPrefix(query.Data, "admin:") {
		if !h.deps.Config.IsAdmin(userID) {
			return h.deps.Bot.AnswerCallbackQuery(query.ID, msgAdminOnly, true)
		}
		return h.handleAdminCallback(ctx, query)
	}

	parts := strings.SplitN(query.Data, ":", 2)
	action := parts[0]
	arg := ""
	if len(parts) == 2 {
		arg = parts[1]
	}

	switch action {
	case "gate":
		return h.handleGateCheck(ctx, query)
	case "buy":
		planID, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return h.deps.Bot.AnswerCallbackQuery(query.ID, "", false)
		}
		_ = h.deps.Bot.AnswerCallbackQuery(query.ID, "", false)
		return h.gated(ctx, userID, func(ctx context.Context, userID int64) error {
			return h.handleBuy(ctx, userID, uint(planID))
		})
	case "videos":
		page, err := strconv.Atoi(arg)
		if err != nil || page < 0 {
			return h.deps.Bot.AnswerCallbackQuery(query.ID, "", false)
		}
		_ = h.deps.Bot.AnswerCallbackQuery(query.ID, "", false)
		return h.gated(ctx, userID, func(ctx context.Context, userID int64) error {
			return h.handleVideosPage(ctx, query, page)
		})
	case "video":
		videoID, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return h.deps.Bot.AnswerCallbackQuery(query.ID, "", false)
		}
		_ = h.deps.Bot.AnswerCallbackQuery(query.ID, "", false)
		return h.gated(ctx, userID, func(ctx context.Context, userID int64) error {
			return h.handleWatchVideo(ctx, userID, uint(videoID))
		})
	default:
		h.deps.Logger.Warnw("unknown callback action", "action", action)
		return h.deps.Bot.AnswerCallbackQuery(query.ID, "", false)
	}
}

func (h *Handler) handleJoinRequest(ctx context.Context, req *telegram.ChatJoinRequest) error {
	if req.Chat == nil || req.From == nil {
		return nil
	}
	if req.Chat.ID != h.deps.Config.PrivateGroupID {
		return nil
	}

	approved, err := h.deps.Arbitrate.Execute(ctx, req.Chat.ID, req.From.ID)
	if err != nil {
		return err
	}

	// Outcome notice is best-effort: the user may never have started the bot.
	notice := msgJoinDeclined
	if approved {
		notice = msgJoinApproved
	}
	if sendErr := h.deps.Bot.SendMessage(req.From.ID, notice); sendErr != nil && !telegram.IsBotBlocked(sendErr) {
		h.deps.Logger.Debugw("failed to send join outcome notice", "user_id", req.From.ID, "error", sendErr)
	}
	return nil
}

// handlePreCheckout answers Telegram's final confirmation. The plan must
// still exist and be purchasable; everything else is validated again on the
// successful-payment message.
func (h *Handler) handlePreCheckout(ctx context.Context, query *telegram.PreCheckoutQuery) error {
	planID, err := parsePlanPayload(query.InvoicePayload)
	if err != nil {
		return h.deps.Bot.AnswerPreCheckoutQuery(query.ID, false, "This offer is no longer valid.")
	}

	plan, err := h.deps.PlanRepo.GetByID(ctx, planID)
	if err != nil {
		h.deps.Logger.Errorw("pre-checkout plan lookup failed", "plan_id", planID, "error", err)
		return h.deps.Bot.AnswerPreCheckoutQuery(query.ID, false, "Please try again in a moment.")
	}
	if plan == nil || !plan.IsActive() {
		return h.deps.Bot.AnswerPreCheckoutQuery(query.ID, false, "This plan is no longer available.")
	}

	return h.deps.Bot.AnswerPreCheckoutQuery(query.ID, true, "")
}

func (h *Handler) handleSuccessfulPayment(ctx context.Context, userID int64, sp *telegram.SuccessfulPayment) error {
	planID, err := parsePlanPayload(sp.InvoicePayload)
	if err != nil {
		h.deps.Logger.Errorw("successful payment with bad payload",
			"user_id", userID,
			"payload", sp.InvoicePayload,
		)
		return h.deps.Bot.SendMessage(userID, msgPaymentFailed)
	}

	sub, err := h.deps.Activate.Execute(ctx, subscriptionUC.ActivateSubscriptionInput{
		UserID:   userID,
		PlanID:   planID,
		Amount:   sp.TotalAmount,
		Currency: sp.Currency,
		Provider: paymentProvider,
		ChargeID: sp.TelegramPaymentChargeID,
	})
	if err != nil {
		if errors.Is(err, payment.ErrDuplicateCharge) {
			return h.deps.Bot.SendMessage(userID, msgPaymentDuplicate)
		}
		h.deps.Logger.Errorw("failed to activate subscription",
			"user_id", userID,
			"plan_id", planID,
			"charge_id", sp.TelegramPaymentChargeID,
			"error", err,
		)
		return h.deps.Bot.SendMessage(userID, msgPaymentFailed)
	}

	// Invite issuing is best-effort: a Telegram hiccup here must not undo
	// the activation. The user can re-request the link from the menu.
	inviteLink, err := h.deps.Grant.Execute(ctx, userID)
	if err != nil {
		h.deps.Logger.Errorw("failed to issue invite after activation", "user_id", userID, "error", err)
		return h.deps.Bot.SendMessageWithKeyboard(userID, msgInviteFailed, mainMenuKeyboard())
	}

	return h.deps.Bot.SendMessageWithKeyboard(userID, formatActivated(sub, inviteLink), mainMenuKeyboard())
}

// gated runs fn only when the channel gate is open, otherwise prompts the
// user to join. Admins bypass the gate.
func (h *Handler) gated(ctx context.Context, userID int64, fn func(ctx context.Context, userID int64) error) error {
	if h.deps.Config.IsAdmin(userID) {
		return fn(ctx, userID)
	}

	unsatisfied, err := h.deps.Gate.Execute(ctx, userID)
	if err != nil {
		return fmt.Errorf("gate check failed: %w", err)
	}
	if len(unsatisfied) > 0 {
		return h.deps.Bot.SendMessageWithInlineKeyboard(userID, msgGatePrompt, gateKeyboard(unsatisfied))
	}
	return fn(ctx, userID)
}

func parsePlanPayload(payload string) (uint, error) {
	raw, ok := strings.CutPrefix(payload, "plan:")
	if !ok {
		return 0, fmt.Errorf("unexpected invoice payload %q", payload)
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid plan ID in payload %q", payload)
	}
	return uint(id), nil
}
