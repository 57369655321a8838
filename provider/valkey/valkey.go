package valkey

import (
	"context"
	"errors"
	"time"

	"github.com/valkey-io/valkey-go"

	pr "github.com/unkn0wn-root/bundlecache/provider"
)

var ErrNilClient = errors.New("valkey provider: nil client")

type Valkey struct {
	client      valkey.Client
	closeClient bool
}

var _ pr.Provider = (*Valkey)(nil)

type Config struct {
	Client      valkey.Client
	CloseClient bool // set true only if this provider exclusively owns the client
}

func New(cfg Config) (*Valkey, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Valkey{client: cfg.Client, closeClient: cfg.CloseClient}, nil
}

// NewFromURL dials url (redis://, rediss:// or unix://) and checks the
// connection. The returned provider owns the client.
func NewFromURL(ctx context.Context, url string) (*Valkey, error) {
	opts, err := valkey.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, err
	}
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, err
	}
	return &Valkey{client: client, closeClient: true}, nil
}

func (p *Valkey) Get(ctx context.Context, key string) ([]byte, bool, error) {
	resp := p.client.Do(ctx, p.client.B().Get().Key(key).Build())
	if err := resp.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	b, err := resp.AsBytes()
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (p *Valkey) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var cmd valkey.Completed
	if secs := ttlSeconds(ttl); secs > 0 {
		cmd = p.client.B().Set().Key(key).Value(valkey.BinaryString(value)).ExSeconds(secs).Build()
	} else {
		cmd = p.client.B().Set().Key(key).Value(valkey.BinaryString(value)).Build()
	}
	return p.client.Do(ctx, cmd).Error()
}

func (p *Valkey) Del(ctx context.Context, key string) error {
	return p.client.Do(ctx, p.client.B().Del().Key(key).Build()).Error()
}

func (p *Valkey) Close(context.Context) error {
	if p.closeClient {
		p.client.Close()
	}
	return nil
}

// ttlSeconds rounds a positive ttl up to whole seconds (EX has no
// sub-second form); 0 means no expiry.
func ttlSeconds(ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}
	secs := int64(ttl / time.Second)
	if ttl%time.Second != 0 {
		secs++
	}
	return secs
}
