package usecases

import "strconv"

// chatRef converts a configured channel reference into the value the Bot API
// expects: numeric IDs go out as integers, usernames as "@name" strings.
func chatRef(channel string) any {
	if id, err := strconv.ParseInt(channel, 10, 64); err == nil {
		return id
	}
	return channel
}
