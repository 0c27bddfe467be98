package ledger

import (
	"sync"

	"ledger/internal/core"
)

type (
	// FormState is either Composing or Editing.
	FormState interface {
		Fields() core.Draft
		isFormState()
	}

	// Composing is a draft that will become a new entry when saved.
	Composing struct {
		Draft core.Draft
	}

	// Editing is a draft that will replace the fields of TargetID when saved.
	Editing struct {
		TargetID int64
		Draft    core.Draft
	}
)

func (c Composing) Fields() core.Draft { return c.Draft }
func (Composing) isFormState()         {}
func (e Editing) Fields() core.Draft   { return e.Draft }
func (Editing) isFormState()           {}

// Form is the single entry form shared by create and edit.
type Form struct {
	mu     sync.Mutex
	ledger *Ledger
	today  func() core.Date
	state  FormState
}

// NewForm returns a form composing a new entry dated today.
func NewForm(l *Ledger, today func() core.Date) *Form {
	if today == nil {
		today = core.Today
	}
	return &Form{
		ledger: l,
		today:  today,
		state:  Composing{Draft: core.NewDraft(today())},
	}
}

// State returns the current draft variant.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Compose discards the current draft and starts a new one.
func (f *Form) Compose() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

// BeginEdit loads the entry with the given id into the form. The entry stays
// in the ledger until the edit is saved. It reports false when the id is
// unknown, leaving the form untouched.
func (f *Form) BeginEdit(id int64) bool {
	e, ok := f.ledger.Find(id)
	if !ok {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = Editing{TargetID: id, Draft: e.Draft()}
	return true
}

// Update replaces the draft fields, keeping the variant.
func (f *Form) Update(d core.Draft) FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch s := f.state.(type) {
	case Editing:
		f.state = Editing{TargetID: s.TargetID, Draft: d}
	default:
		f.state = Composing{Draft: d}
	}
	return f.state
}

// Save commits the draft. A composing draft is added; an editing draft
// replaces its target. When the target has been deleted meanwhile the save
// is a no-op and the zero Entry is returned. On a validation error the draft
// is kept; on any other outcome the form starts a fresh draft.
func (f *Form) Save() (core.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch s := f.state.(type) {
	case Editing:
		found, err := f.ledger.Edit(s.TargetID, s.Draft)
		if err != nil {
			return core.Entry{}, err
		}
		f.reset()
		if !found {
			return core.Entry{}, nil
		}
		e, _ := f.ledger.Find(s.TargetID)
		return e, nil
	default:
		e, err := f.ledger.Add(s.Fields())
		if err != nil {
			return core.Entry{}, err
		}
		f.reset()
		return e, nil
	}
}

func (f *Form) reset() {
	f.state = Composing{Draft: core.NewDraft(f.today())}
}
