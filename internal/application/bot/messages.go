package bot

import (
	"fmt"
	"strings"
	"time"

	"kursly/internal/domain/subscription"
	"kursly/internal/shared/biztime"
)

// ExpiryNoticeText is sent when a subscription lapses and group access is
// about to be revoked.
const ExpiryNoticeText = "⏰ Your subscription has expired and access to the course group has been revoked.\n\nUse the menu to renew and get a fresh invite link."

const (
	msgWelcome = "👋 Welcome to the course bot!\n\nHere you can buy a subscription, watch the lessons, and get access to the private course group."

	msgGatePrompt = "🔐 To use the bot, please join our channel(s) first, then press the button below."

	msgGateStillMissing = "You have not joined all required channels yet."

	msgGatePassed = "✅ Thank you! You are all set."

	msgNoPlans = "No plans are available right now. Please check back later."

	msgChoosePlan = "📦 Choose a plan:"

	msgNoSubscription = "You don't have an active subscription.\n\nPick a plan from the menu to get access."

	msgNotEntitledVideos = "🔒 The lessons are available to subscribers only.\n\nPick a plan from the menu to get access."

	msgNoVideos = "No lessons have been published yet."

	msgPaymentDuplicate = "This payment was already processed. Your subscription is active."

	msgPaymentFailed = "Something went wrong while activating your subscription. Please contact support, your payment reference has been recorded."

	msgInviteFailed = "Your subscription is active, but the invite link could not be created right now. Use \"Group access\" in the menu to try again."

	msgNotEntitledGroup = "You need an active subscription to join the course group."

	msgJoinApproved = "✅ Your request to join the course group was approved. Welcome!"

	msgJoinDeclined = "❌ Your request to join the course group was declined. An active subscription is required."

	msgUnknown = "I didn't understand that. Use the menu buttons below."

	msgAdminOnly = "This command is for administrators."

	msgDialogCancelled = "Cancelled."

	msgAdminError = "Something went wrong, nothing was saved. Try again."

	msgAskPlanName = "Enter the plan name:"

	msgAskPlanDays = "Enter the duration in days (0 for lifetime):"

	msgAskPlanPrice = "Enter the price in whole currency units (e.g. 50000):"

	msgAskVideoFile = "Send the lesson video:"

	msgAskVideoTitle = "Now enter the lesson title:"

	msgAskBroadcast = "Send the message to broadcast to all users:"

	msgInvalidNumber = "Please enter a valid positive number."

	msgExpectedVideo = "That is not a video. Please send a video file, or /cancel."
)

const (
	btnPlans        = "📦 Plans"
	btnVideos       = "🎬 Lessons"
	btnSubscription = "📊 My subscription"
	btnGroupAccess  = "🔑 Group access"
)

// dateLayout is how dates are shown to users, in the business timezone.
const dateLayout = "02.01.2006 15:04"

func formatPlanLabel(p *subscription.Plan, currency string) string {
	return fmt.Sprintf("%s — %s", p.Name(), formatPrice(p.Price(), currency))
}

func formatPlanDuration(p *subscription.Plan) string {
	if p.IsLifetime() {
		return "lifetime"
	}
	return fmt.Sprintf("%d days", *p.DurationDays())
}

// formatPrice renders minor units as whole currency units.
func formatPrice(minor int64, currency string) string {
	return fmt.Sprintf("%d %s", minor/100, currency)
}

func formatSubscriptionStatus(sub *subscription.Subscription) string {
	if sub.IsLifetime() {
		return "✅ Your subscription is active.\n\nAccess: lifetime"
	}
	return fmt.Sprintf("✅ Your subscription is active.\n\nValid until: %s",
		biztime.FormatInBizTimezone(*sub.EndDate(), dateLayout))
}

func formatActivated(sub *subscription.Subscription, inviteLink string) string {
	var b strings.Builder
	b.WriteString("🎉 Payment received, your subscription is active!\n\n")
	if sub.IsLifetime() {
		b.WriteString("Access: lifetime\n")
	} else {
		fmt.Fprintf(&b, "Valid until: %s\n", biztime.FormatInBizTimezone(*sub.EndDate(), dateLayout))
	}
	if inviteLink != "" {
		fmt.Fprintf(&b, "\nJoin the private course group (single-use link):\n%s", inviteLink)
	}
	return b.String()
}

func formatInvite(inviteLink string) string {
	return fmt.Sprintf("🔑 Your single-use invite link to the course group:\n%s", inviteLink)
}

func formatStats(users, activeSubs, payments int64, revenue int64, currency string, now time.Time) string {
	return fmt.Sprintf(
		"📊 <b>Stats</b> (%s)\n\n👥 Users: %d\n✅ Active subscriptions: %d\n💳 Payments: %d\n💰 Revenue: %s",
		biztime.FormatInBizTimezone(now, dateLayout),
		users, activeSubs, payments,
		formatPrice(revenue, currency),
	)
}

func formatPlanCreated(p *subscription.Plan, currency string) string {
	return fmt.Sprintf("✅ Plan created:\n\n%s\nDuration: %s",
		formatPlanLabel(p, currency), formatPlanDuration(p))
}

func formatBroadcastStarted(recipients int) string {
	return fmt.Sprintf("📣 Broadcast started for %d users. A report follows when it finishes.", recipients)
}

func formatBroadcastReport(delivered, blocked, failed int) string {
	return fmt.Sprintf("📣 Broadcast finished.\n\nDelivered: %d\nBlocked the bot: %d\nFailed: %d",
		delivered, blocked, failed)
}
