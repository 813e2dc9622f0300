package memengine

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const snapshotVersion = 1

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// snapshotDocument is the on-disk JSON layout of the state.
type snapshotDocument struct {
	Version    int                    `json:"version"`
	Categories []circulation.Category `json:"categories"`
	Items      []circulation.Item     `json:"items"`
	Patrons    []circulation.Patron   `json:"patrons"`
	Loans      []circulation.Loan     `json:"loans"`
}

func documentFrom(st *state) snapshotDocument {
	all := func(circulation.Item) bool { return true }

	return snapshotDocument{
		Version:    snapshotVersion,
		Categories: st.categories,
		Items:      st.itemsWhere(all),
		Patrons:    st.patronsWhere(func(circulation.Patron) bool { return true }),
		Loans:      st.loans,
	}
}

// writeSnapshot writes the state to a temporary file next to path and renames it,
// so a crash never leaves a half-written snapshot behind.
func writeSnapshot(path string, st *state) error {
	data, err := json.MarshalIndent(documentFrom(st), "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}

	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// loadSnapshot replaces the state with the content of the snapshot file.
// A missing file leaves the state empty.
func (s *Store) loadSnapshot() error {
	data, err := os.ReadFile(s.snapshotFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return errors.Join(circulation.ErrLoadingSnapshotFailed, err)
	}

	var doc snapshotDocument
	if err = json.Unmarshal(data, &doc); err != nil {
		return errors.Join(circulation.ErrLoadingSnapshotFailed, err)
	}

	st, err := stateFrom(doc)
	if err != nil {
		return errors.Join(circulation.ErrLoadingSnapshotFailed, err)
	}

	s.st = st
	s.logInfo(context.Background(), logMsgSnapshotLoaded,
		logAttrFile, s.snapshotFile,
		logAttrSnapshotVersion, doc.Version,
		logAttrItemCount, len(doc.Items),
		logAttrPatronCount, len(doc.Patrons),
		logAttrLoanCount, len(doc.Loans))

	return nil
}

// stateFrom rebuilds the indexes and verifies that availability flags agree with the ledger.
func stateFrom(doc snapshotDocument) (*state, error) {
	st := newState()

	for _, category := range doc.Categories {
		if err := st.addCategory(category); err != nil {
			return nil, err
		}
	}

	for _, item := range doc.Items {
		if err := st.addItem(item); err != nil {
			return nil, err
		}
	}

	for _, patron := range doc.Patrons {
		if err := st.addPatron(patron); err != nil {
			return nil, err
		}
	}

	for _, loan := range doc.Loans {
		if _, exists := st.loanIndex[loan.ID]; exists {
			return nil, errors.Join(circulation.ErrDuplicateID, errors.New("loan "+loan.ID.String()))
		}

		st.loans = append(st.loans, loan)
		st.loanIndex[loan.ID] = len(st.loans) - 1

		if !loan.IsOpen() {
			continue
		}

		if _, open := st.openByItem[loan.ItemID]; open {
			return nil, errors.Join(circulation.ErrInvariantViolation, errors.New("two open loans for item "+loan.ItemID.String()))
		}

		st.openByItem[loan.ItemID] = len(st.loans) - 1
	}

	for id, item := range st.items {
		if _, open := st.openByItem[id]; item.Available == open {
			return nil, errors.Join(circulation.ErrInvariantViolation, errors.New("availability of item "+id.String()+" disagrees with the ledger"))
		}
	}

	return st, nil
}
