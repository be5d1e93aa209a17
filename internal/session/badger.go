package session

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"mercauca/internal/logger"
)

var (
	keyToken     = []byte("token")
	keyExpiresAt = []byte("expiresAtUtc")
	keyUser      = []byte("user")
)

type badgerStore struct {
	db  *badger.DB
	now func() time.Time
}

// Open opens (or creates) the session store in dir
func Open(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a store that lives only as long as the process
func OpenInMemory() (Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*badgerStore, error) {
	db, err := badger.Open(opts.WithLogger(badgerLogger{}).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return &badgerStore{db: db, now: time.Now}, nil
}

func (s *badgerStore) Save(sess Session) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(keyToken, []byte(sess.Token)); err != nil {
			return err
		}
		if err := txn.Set(keyExpiresAt, []byte(sess.ExpiresAtUTC)); err != nil {
			return err
		}
		user := sess.User
		if len(user) == 0 {
			user = []byte("null")
		}
		return txn.Set(keyUser, user)
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns the stored session. Expired sessions are removed and
// reported as ErrExpired.
func (s *badgerStore) Load() (*Session, error) {
	var sess Session
	err := s.db.View(func(txn *badger.Txn) error {
		token, err := get(txn, keyToken)
		if err != nil {
			return err
		}
		expires, err := get(txn, keyExpiresAt)
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		user, err := get(txn, keyUser)
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		sess = Session{Token: string(token), ExpiresAtUTC: string(expires), User: user}
		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if sess.Token == "" {
		return nil, ErrNoSession
	}

	if sess.Expired(s.now()) {
		logger.Info("stored session expired")
		if err := s.Clear(); err != nil {
			return nil, err
		}
		return nil, ErrExpired
	}
	return &sess, nil
}

func get(txn *badger.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func (s *badgerStore) Clear() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, key := range [][]byte{keyToken, keyExpiresAt, keyUser} {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger routes badger's internal logging to the application log
type badgerLogger struct{}

func (badgerLogger) Errorf(f string, v ...interface{})   { logger.Errorf("badger: "+f, v...) }
func (badgerLogger) Warningf(f string, v ...interface{}) { logger.Warnf("badger: "+f, v...) }
func (badgerLogger) Infof(f string, v ...interface{})    { logger.Debugf("badger: "+f, v...) }
func (badgerLogger) Debugf(f string, v ...interface{})   { logger.Debugf("badger: "+f, v...) }
