package fakecookiestore

import (
	"sync"

	"github.com/jrsteele09/uigen-server/sessions"
)

var _ sessions.CookieStore = (*FakeCookieStore)(nil)

// SetCall records one Set invocation.
type SetCall struct {
	Name    string
	Value   string
	Options sessions.CookieOptions
}

// FakeCookieStore is an in-memory cookie jar. The Err fields make the matching
// operation fail without touching the jar.
type FakeCookieStore struct {
	cookies map[string]string
	calls   []SetCall
	lock    sync.RWMutex

	SetErr    error
	GetErr    error
	DeleteErr error
}

func NewFakeCookieStore() *FakeCookieStore {
	return &FakeCookieStore{
		cookies: make(map[string]string),
	}
}

func (cs *FakeCookieStore) Set(name, value string, opts sessions.CookieOptions) error {
	cs.lock.Lock()
	defer cs.lock.Unlock()

	cs.calls = append(cs.calls, SetCall{Name: name, Value: value, Options: opts})
	if cs.SetErr != nil {
		return cs.SetErr
	}
	cs.cookies[name] = value
	return nil
}

func (cs *FakeCookieStore) Get(name string) (*sessions.Cookie, error) {
	cs.lock.RLock()
	defer cs.lock.RUnlock()

	if cs.GetErr != nil {
		return nil, cs.GetErr
	}
	value, ok := cs.cookies[name]
	if !ok {
		return nil, nil
	}
	return &sessions.Cookie{Name: name, Value: value}, nil
}

func (cs *FakeCookieStore) Delete(name string) error {
	cs.lock.Lock()
	defer cs.lock.Unlock()

	if cs.DeleteErr != nil {
		return cs.DeleteErr
	}
	delete(cs.cookies, name)
	return nil
}

// Put stores a raw cookie value, bypassing Set bookkeeping.
func (cs *FakeCookieStore) Put(name, value string) {
	cs.lock.Lock()
	defer cs.lock.Unlock()
	cs.cookies[name] = value
}

// SetCalls returns every Set invocation in order, including failed ones.
func (cs *FakeCookieStore) SetCalls() []SetCall {
	cs.lock.RLock()
	defer cs.lock.RUnlock()
	return append([]SetCall(nil), cs.calls...)
}
