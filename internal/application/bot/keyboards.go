package bot

import (
	"fmt"
	"strings"

	"kursly/internal/domain/subscription"
	"kursly/internal/domain/video"
	"kursly/internal/infrastructure/telegram"
)

const videosPerPage = 5

func mainMenuKeyboard() *telegram.ReplyKeyboardMarkup {
	return &telegram.ReplyKeyboardMarkup{
		Keyboard: [][]telegram.KeyboardButton{
			{{Text: btnPlans}, {Text: btnVideos}},
			{{Text: btnSubscription}, {Text: btnGroupAccess}},
		},
		ResizeKeyboard: true,
	}
}

// gateKeyboard links the channels the user still has to join and adds a
// recheck button. Callers pass only the unsatisfied channels, so already
// joined ones never reappear in the prompt.
// Numeric channel IDs have no public URL, so they get a plain row label.
func gateKeyboard(channels []string) *telegram.InlineKeyboardMarkup {
	rows := make([][]telegram.InlineKeyboardButton, 0, len(channels)+1)
	for i, ch := range channels {
		label := fmt.Sprintf("📢 Channel %d", i+1)
		if strings.HasPrefix(ch, "@") {
			rows = append(rows, telegram.NewInlineKeyboardRow(
				telegram.NewInlineKeyboardButtonURL(label, "https://t.me/"+strings.TrimPrefix(ch, "@")),
			))
		} else {
			rows = append(rows, telegram.NewInlineKeyboardRow(
				telegram.NewInlineKeyboardButton(label, "gate:check"),
			))
		}
	}
	rows = append(rows, telegram.NewInlineKeyboardRow(
		telegram.NewInlineKeyboardButton("✅ I joined", "gate:check"),
	))
	return telegram.NewInlineKeyboard(rows...)
}

func plansKeyboard(plans []*subscription.Plan, currency string) *telegram.InlineKeyboardMarkup {
	rows := make([][]telegram.InlineKeyboardButton, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButton(
				formatPlanLabel(p, currency),
				fmt.Sprintf("buy:%d", p.ID()),
			),
		))
	}
	return telegram.NewInlineKeyboard(rows...)
}

// videosKeyboard renders one page of lessons plus prev/next navigation.
func videosKeyboard(videos []*video.Video, page int) *telegram.InlineKeyboardMarkup {
	start := page * videosPerPage
	end := start + videosPerPage
	if start > len(videos) {
		start = len(videos)
	}
	if end > len(videos) {
		end = len(videos)
	}

	rows := make([][]telegram.InlineKeyboardButton, 0, videosPerPage+1)
	for i, v := range videos[start:end] {
		rows = append(rows, telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButton(
				fmt.Sprintf("%d. %s", start+i+1, v.Title()),
				fmt.Sprintf("video:%d", v.ID()),
			),
		))
	}

	var nav []telegram.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, telegram.NewInlineKeyboardButton("⬅️", fmt.Sprintf("videos:%d", page-1)))
	}
	if end < len(videos) {
		nav = append(nav, telegram.NewInlineKeyboardButton("➡️", fmt.Sprintf("videos:%d", page+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	return telegram.NewInlineKeyboard(rows...)
}

func adminMenuKeyboard() *telegram.InlineKeyboardMarkup {
	return telegram.NewInlineKeyboard(
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButton("📊 Stats", "admin:stats"),
			telegram.NewInlineKeyboardButton("📣 Broadcast", "admin:broadcast"),
		),
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButton("➕ Add plan", "admin:addplan"),
			telegram.NewInlineKeyboardButton("📦 Plans", "admin:plans"),
		),
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButton("🎬 Add lesson", "admin:addvideo"),
			telegram.NewInlineKeyboardButton("👥 Users", "admin:users"),
		),
	)
}
