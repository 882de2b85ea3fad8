package guard

import (
	"time"

	"github.com/gabapcia/sharkguard/internal/anomaly"
	"github.com/gabapcia/sharkguard/internal/features"

	"github.com/google/uuid"
)

// Report is the full analysis outcome for one wallet: the extracted feature
// vector, the model verdict, the heuristic flags, and the watchlist status.
// Reports are derived on demand and never stored.
type Report struct {
	// ID uniquely identifies this analysis run.
	ID uuid.UUID `json:"id"`

	// Wallet is the analyzed address, lowercased.
	Wallet string `json:"wallet"`

	// TxCount is the number of normalized transactions the analysis saw.
	TxCount int `json:"tx_count"`

	// Features is the extracted feature vector the verdict was computed from.
	Features features.Vector `json:"features"`

	// Result carries the model's suspicion score and label.
	Result anomaly.ScoreResult `json:"result"`

	// Flags lists the human-readable heuristic findings, in rule order.
	Flags []string `json:"flags"`

	// Watchlisted reports whether the wallet is on the manual watchlist.
	Watchlisted bool `json:"watchlisted"`

	// GeneratedAt is the UTC timestamp of the analysis.
	GeneratedAt time.Time `json:"generated_at"`
}
