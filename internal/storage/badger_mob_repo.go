package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dgraph-io/badger/v3"
)

var mobKeyPrefix = []byte("mob:")

// BadgerMobRepo хранит мобов в BadgerDB; значения сжаты zstd
type BadgerMobRepo struct {
	db     *badger.DB
	dbPath string
	codec  recordCodec
	mutex  sync.RWMutex
	ready  bool
}

// NewBadgerMobRepo открывает хранилище мобов в dataPath/mobs.
// Пустой dataPath открывает базу в памяти.
func NewBadgerMobRepo(dataPath string) (*BadgerMobRepo, error) {
	var opts badger.Options
	dbPath := ""
	if dataPath == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dbPath = filepath.Join(dataPath, "mobs")
		opts = badger.DefaultOptions(dbPath)
	}
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	return &BadgerMobRepo{
		db:     db,
		dbPath: dbPath,
		ready:  true,
	}, nil
}

func mobKey(id uint64) []byte {
	key := make([]byte, len(mobKeyPrefix)+8)
	copy(key, mobKeyPrefix)
	// Big-endian, чтобы итерация шла по возрастанию ID
	binary.BigEndian.PutUint64(key[len(mobKeyPrefix):], id)
	return key
}

func (r *BadgerMobRepo) checkReady() error {
	if !r.ready {
		return fmt.Errorf("хранилище не готово")
	}
	return nil
}

// Save сохраняет моба
func (r *BadgerMobRepo) Save(ctx context.Context, rec MobRecord) error {
	return r.BatchSave(ctx, []MobRecord{rec})
}

// Load загружает моба
func (r *BadgerMobRepo) Load(ctx context.Context, id uint64) (MobRecord, bool, error) {
	if err := checkContext(ctx); err != nil {
		return MobRecord{}, false, err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if err := r.checkReady(); err != nil {
		return MobRecord{}, false, err
	}

	var rec MobRecord
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(mobKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := r.codec.Decode(val)
			rec = decoded
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return MobRecord{}, false, nil
	}
	if err != nil {
		return MobRecord{}, false, fmt.Errorf("ошибка загрузки моба %d: %w", id, err)
	}
	return rec, true, nil
}

// LoadAll возвращает все записи по возрастанию ID
func (r *BadgerMobRepo) LoadAll(ctx context.Context) ([]MobRecord, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if err := r.checkReady(); err != nil {
		return nil, err
	}

	var recs []MobRecord
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(mobKeyPrefix); it.ValidForPrefix(mobKeyPrefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				rec, err := r.codec.Decode(val)
				if err != nil {
					return err
				}
				recs = append(recs, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения мобов: %w", err)
	}
	return recs, nil
}

// Delete удаляет моба
func (r *BadgerMobRepo) Delete(ctx context.Context, id uint64) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if err := r.checkReady(); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(mobKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: моб %d", ErrNotFound, id)
			}
			return err
		}
		return txn.Delete(mobKey(id))
	})
}

// BatchSave сохраняет мобов одной пакетной записью
func (r *BadgerMobRepo) BatchSave(ctx context.Context, recs []MobRecord) error {
	if len(recs) == 0 {
		return nil
	}
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if err := r.checkReady(); err != nil {
		return err
	}

	// Валидация всех записей перед записью
	encoded := make([][]byte, len(recs))
	for i, rec := range recs {
		if err := rec.validate(); err != nil {
			return fmt.Errorf("batch: %w", err)
		}
		data, err := r.codec.Encode(rec)
		if err != nil {
			return err
		}
		encoded[i] = data
	}

	wb := r.db.NewWriteBatch()
	for i, rec := range recs {
		if err := wb.Set(mobKey(rec.ID), encoded[i]); err != nil {
			wb.Cancel()
			return fmt.Errorf("ошибка записи моба %d: %w", rec.ID, err)
		}
	}
	return wb.Flush()
}

// Close закрывает хранилище данных
func (r *BadgerMobRepo) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.ready {
		return nil
	}

	r.ready = false
	r.codec.Close()
	return r.db.Close()
}
