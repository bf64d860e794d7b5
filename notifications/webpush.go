package notifications

import (
	"context"
	"fmt"
	"io"
	"strings"

	"taskforge/db"
	"taskforge/state"
	"taskforge/types"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/jackc/pgx/v5"
	jsoniter "github.com/json-iterator/go"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	pushCols = strings.Join(db.GetCols(types.PushSubscription{}), ", ")
)

type Message struct {
	Message string `json:"message"`
	Title   string `json:"title"`
	Icon    string `json:"icon"`
}

// PushToMember sends a payload to every push subscription of a member.
// Subscriptions the push service reports gone are pruned.
func PushToMember(ctx context.Context, memberID string, message []byte) error {
	rows, err := state.Pool.Query(ctx, "SELECT "+pushCols+" FROM push_subscriptions WHERE member_id = $1", memberID)

	if err != nil {
		return fmt.Errorf("error finding push subscriptions: %w", err)
	}

	subs, err := pgx.CollectRows(rows, pgx.RowToStructByName[types.PushSubscription])

	if err != nil {
		return fmt.Errorf("error decoding push subscriptions: %w", err)
	}

	for _, s := range subs {
		sub := webpush.Subscription{
			Endpoint: s.Endpoint,
			Keys: webpush.Keys{
				Auth:   s.Auth,
				P256dh: s.P256dh,
			},
		}

		resp, err := webpush.SendNotification(message, &sub, &webpush.Options{
			Subscriber:      state.Config.Notifications.Subscriber,
			VAPIDPublicKey:  state.Config.Notifications.VapidPublicKey,
			VAPIDPrivateKey: state.Config.Notifications.VapidPrivateKey,
			TTL:             30,
		})

		if err != nil {
			if resp != nil && (resp.StatusCode == 410 || resp.StatusCode == 404) {
				// Subscription is gone, drop it
				state.Pool.Exec(ctx, "DELETE FROM push_subscriptions WHERE notif_id = $1", s.NotifID)
			}

			state.Logger.Errorw("Error sending push notification", "error", err, "member_id", memberID, "notif_id", s.NotifID)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		state.Logger.Infow("Sent push notification", "member_id", memberID, "status", resp.StatusCode, "body", string(body))
		resp.Body.Close()
	}

	return nil
}

// AlertPusher fans newly created missed-task alerts out over webpush.
// Implements sweep.Notifier.
type AlertPusher struct{}

func (AlertPusher) AlertCreated(ctx context.Context, alert types.Alert) {
	msg := Message{
		Message: alert.Message,
		Title:   "Missed task",
	}

	bytes, err := json.Marshal(msg)

	if err != nil {
		state.Logger.Errorw("Error marshalling alert push", "error", err, "alert_id", alert.ID)
		return
	}

	err = PushToMember(ctx, alert.AssigneeID, bytes)

	if err != nil {
		state.Logger.Errorw("Error pushing alert", "error", err, "alert_id", alert.ID, "member_id", alert.AssigneeID)
	}
}
