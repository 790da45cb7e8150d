package history

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/idfusion/infinite-grid/internal/simulate"
	"github.com/idfusion/infinite-grid/internal/storage"
)

// Keeper handles the logic for the sessions commands.
type Keeper struct {
	Storage *storage.Storage
}

// NewKeeper opens the session history at storagePath.
func NewKeeper(storagePath string) (*Keeper, error) {
	s, err := storage.NewOrExistingStorage(storagePath)
	if err != nil {
		return nil, err
	}

	return &Keeper{Storage: s}, nil
}

// View prints the recorded sessions, oldest first, to the provided writer.
func (k *Keeper) View(w io.Writer) {
	if len(k.Storage.Data.Sessions) == 0 {
		fmt.Fprintln(w, "No sessions recorded.")
		return
	}

	for _, rec := range k.Storage.Data.Sessions {
		fmt.Fprintf(w, "%s  %-8s %s  (%s)\n",
			rec.ID, rec.Mode, rec.StartedAt.Format("2006-01-02 15:04:05"),
			simulate.HumanDuration(rec.EndedAt.Sub(rec.StartedAt)))
		fmt.Fprintf(w, "  - tiles: %d  centre: %s  explored: %s\n", rec.Tiles, rec.Centre, rec.Explored)
	}
}

// Record adds a finished session to the history.
func (k *Keeper) Record(rec storage.SessionRecord) error {
	logrus.Debugf("Recording session: id=%s, mode=%s, tiles=%d", rec.ID, rec.Mode, rec.Tiles)
	return k.Storage.Record(rec)
}

// Reset clears the history.
func (k *Keeper) Reset() error {
	return k.Storage.Reset()
}
