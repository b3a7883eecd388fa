package session

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

var sessionBucket = []byte("sessions")

// BoltBackend stores sessions in a bbolt file. Each record is prefixed with its
// expiry as unix seconds.
type BoltBackend struct {
	db *bbolt.DB
}

func OpenBolt(path string) (*BoltBackend, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open session db %s", path)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create session bucket")
	}
	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) Load(_ context.Context, id string) ([]byte, error) {
	var data []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(sessionBucket).Get([]byte(id))
		if len(v) < 8 || expired(v, time.Now()) {
			return ErrNotFound
		}
		data = append([]byte(nil), v[8:]...)
		return nil
	})
	return data, err
}

func (b *BoltBackend) Save(_ context.Context, id string, data []byte, ttl time.Duration) error {
	record := make([]byte, 8+len(data))
	binary.BigEndian.PutUint64(record, uint64(time.Now().Add(ttl).Unix()))
	copy(record[8:], data)
	return errors.Wrap(b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionBucket).Put([]byte(id), record)
	}), "save session")
}

func (b *BoltBackend) Delete(_ context.Context, id string) error {
	return errors.Wrap(b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete([]byte(id))
	}), "delete session")
}

// PurgeExpired deletes records whose expiry is before now
func (b *BoltBackend) PurgeExpired(now time.Time) (int, error) {
	removed := 0
	err := b.db.Update(func(tx *bbolt.Tx) error {
		c := tx.Bucket(sessionBucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if len(v) >= 8 && !expired(v, now) {
				continue
			}
			if err := c.Delete(); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, errors.Wrap(err, "purge sessions")
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}

func expired(record []byte, now time.Time) bool {
	return int64(binary.BigEndian.Uint64(record[:8])) < now.Unix()
}
