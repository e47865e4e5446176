package discord

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/questx-lab/discordx/internal/common"
)

type InteractionFunc func(ctx context.Context, i *Interaction)

// InteractionHandler serves the interaction webhook of the application. It
// answers pings itself and passes every other interaction to fn, which is
// expected to respond through the Interaction methods.
func InteractionHandler(client *Client, key ed25519.PublicKey, fn InteractionFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		body, err := Verify(r, key)
		if err != nil {
			client.logger.Debugf("Reject an interaction request: %v", err)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var raw APIInteraction
		if err := json.Unmarshal(body, &raw); err != nil {
			client.logger.Warnf("Cannot decode an interaction: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		common.PromCounters[common.DiscordInteractionsReceivedTotal].
			WithLabelValues(strconv.Itoa(int(raw.Type))).Inc()

		if raw.Type == InteractionPing {
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(interactionCallback{Type: CallbackPong}); err != nil {
				client.logger.Warnf("Cannot answer a ping: %v", err)
			}
			return
		}

		fn(r.Context(), client.NewInteraction(r.Context(), raw))
		w.WriteHeader(http.StatusAccepted)
	})
}
