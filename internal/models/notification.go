package models

type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
	NotificationAnswer  NotificationType = "answer"
	NotificationMention NotificationType = "mention"
	NotificationSystem  NotificationType = "system"
)

// Notification is created only by the notification emitter. Owners may mark it
// read or delete it.
type Notification struct {
	Record
	UserID     string           `json:"user" gorm:"size:36;not null;index"`
	Type       NotificationType `json:"type" gorm:"size:20;not null"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	TargetID   string           `json:"target_id,omitempty"`
	TargetType TargetType       `json:"target_type,omitempty" gorm:"size:20"`
	IsRead     bool             `json:"is_read" gorm:"default:false;index"`
	ActorID    string           `json:"actor,omitempty" gorm:"size:36"`
}

// Target returns the polymorphic reference, or false when none was recorded.
func (n *Notification) Target() (Target, bool) {
	if n.TargetID == "" || n.TargetType == "" {
		return Target{}, false
	}
	return Target{Type: n.TargetType, ID: n.TargetID}, true
}
