package display

import "fmt"

// NotificationKind names a row notification.
type NotificationKind string

const (
	KindInserted     NotificationKind = "inserted"
	KindChanged      NotificationKind = "changed"
	KindRemoved      NotificationKind = "removed"
	KindRangeChanged NotificationKind = "range-changed"
	KindReset        NotificationKind = "reset"
)

// Notification is one recorded RowSink call.
type Notification struct {
	Kind  NotificationKind
	Index int
	Count int // range-changed and reset only
}

func (n Notification) String() string {
	switch n.Kind {
	case KindRangeChanged:
		return fmt.Sprintf("%s [%d, %d)", n.Kind, n.Index, n.Index+n.Count)
	case KindReset:
		return fmt.Sprintf("%s %d rows", n.Kind, n.Count)
	default:
		return fmt.Sprintf("%s %d", n.Kind, n.Index)
	}
}

// RecordingSink is a RowSink that keeps every notification and a row count.
type RecordingSink struct {
	Notifications []Notification
	Rows          int
}

func (r *RecordingSink) NotifyInserted(index int) {
	r.Rows++
	r.Notifications = append(r.Notifications, Notification{Kind: KindInserted, Index: index})
}

func (r *RecordingSink) NotifyChanged(index int) {
	r.Notifications = append(r.Notifications, Notification{Kind: KindChanged, Index: index})
}

func (r *RecordingSink) NotifyRemoved(index int) {
	r.Rows--
	r.Notifications = append(r.Notifications, Notification{Kind: KindRemoved, Index: index})
}

func (r *RecordingSink) NotifyRangeChanged(start, count int) {
	r.Notifications = append(r.Notifications, Notification{Kind: KindRangeChanged, Index: start, Count: count})
}

func (r *RecordingSink) NotifyReset(count int) {
	r.Rows = count
	r.Notifications = append(r.Notifications, Notification{Kind: KindReset, Count: count})
}

// Last returns the most recent notification, if any.
func (r *RecordingSink) Last() (Notification, bool) {
	if len(r.Notifications) == 0 {
		return Notification{}, false
	}
	return r.Notifications[len(r.Notifications)-1], true
}

var _ RowSink = (*RecordingSink)(nil)
