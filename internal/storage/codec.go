package storage

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// recordCodec сериализует записи в JSON и сжимает их zstd
type recordCodec struct {
	encOnce sync.Once
	decOnce sync.Once
	enc     *zstd.Encoder
	dec     *zstd.Decoder
	err     error
}

func (c *recordCodec) encoder() (*zstd.Encoder, error) {
	c.encOnce.Do(func() {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			c.err = fmt.Errorf("zstd encoder: %w", err)
			return
		}
		c.enc = enc
	})
	return c.enc, c.err
}

func (c *recordCodec) decoder() (*zstd.Decoder, error) {
	c.decOnce.Do(func() {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			c.err = fmt.Errorf("zstd decoder: %w", err)
			return
		}
		c.dec = dec
	})
	return c.dec, c.err
}

// Encode возвращает сжатое JSON-представление записи
func (c *recordCodec) Encode(rec MobRecord) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации моба %d: %w", rec.ID, err)
	}
	enc, err := c.encoder()
	if err != nil {
		return nil, err
	}
	return enc.EncodeAll(data, make([]byte, 0, len(data))), nil
}

// Decode разжимает и разбирает запись
func (c *recordCodec) Decode(raw []byte) (MobRecord, error) {
	dec, err := c.decoder()
	if err != nil {
		return MobRecord{}, err
	}
	data, err := dec.DecodeAll(raw, nil)
	if err != nil {
		return MobRecord{}, fmt.Errorf("zstd: %w", err)
	}

	var rec MobRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return MobRecord{}, fmt.Errorf("ошибка десериализации моба: %w", err)
	}
	return rec, nil
}

// Close освобождает ресурсы кодека
func (c *recordCodec) Close() {
	if c.enc != nil {
		_ = c.enc.Close()
	}
	if c.dec != nil {
		c.dec.Close()
	}
}
