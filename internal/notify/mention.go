package notify

// MentionAlways mentions regardless of the job status.
const MentionAlways = "always"

// IsMention reports whether a notification for status should carry a mention under condition.
func IsMention(condition, status string) bool {
	return condition == MentionAlways || condition == status
}

// ValidMentionCondition reports whether condition is always or one of the job statuses.
func ValidMentionCondition(condition string) bool {
	if condition == MentionAlways {
		return true
	}
	_, ok := accessories[Status(condition)]
	return ok
}
