package idempotency

import "strconv"

// UpdateKey identifies one transport update. Update ids are unique per bot.
func UpdateKey(updateID int64) string {
	return "update:" + strconv.FormatInt(updateID, 10)
}
