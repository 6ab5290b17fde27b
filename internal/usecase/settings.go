package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"aide/internal/domain"
	"aide/internal/port"
)

// SettingUseCase manages configuration key/value pairs.
type SettingUseCase struct {
	store   port.SettingStore
	catalog *Catalog
	names   *NameResolver
	now     func() time.Time
	logger  *zap.Logger
}

func NewSettingUseCase(store port.SettingStore, catalog *Catalog, names *NameResolver, logger *zap.Logger) *SettingUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingUseCase{
		store:   store,
		catalog: catalog,
		names:   names,
		now:     time.Now,
		logger:  logger,
	}
}

// Set writes value under the key raw names. A key that only resolves through
// an accepted suggestion overwrites the suggested key; otherwise raw becomes a
// new key. It returns the key written and whether it is new.
func (u *SettingUseCase) Set(ctx context.Context, raw, value string) (key string, created bool, err error) {
	if strings.TrimSpace(raw) == "" {
		return "", false, fmt.Errorf("%w: config key must not be empty", domain.ErrInvalid)
	}

	key, found, err := u.names.Find(ctx, domain.KindSetting, raw)
	if err != nil {
		return "", false, err
	}
	if !found {
		key = raw
	}

	created, err = u.store.PutSetting(domain.Setting{Key: key, Value: value, UpdatedAt: u.now().UTC()})
	if err != nil {
		return "", false, err
	}
	if created {
		u.catalog.Insert(domain.KindSetting, key)
	}
	u.logger.Debug("set config key", zap.String("key", key), zap.Bool("created", created))
	return key, created, nil
}

func (u *SettingUseCase) Get(ctx context.Context, raw string) (domain.Setting, error) {
	key, err := u.names.Resolve(ctx, domain.KindSetting, raw)
	if err != nil {
		return domain.Setting{}, err
	}
	return u.store.GetSetting(key)
}

// List returns every setting by key.
func (u *SettingUseCase) List() ([]domain.Setting, error) {
	settings, err := u.store.ListSettings()
	if err != nil {
		return nil, err
	}
	sort.Slice(settings, func(i, j int) bool { return settings[i].Key < settings[j].Key })
	return settings, nil
}

func (u *SettingUseCase) Delete(ctx context.Context, raw string) (domain.Setting, error) {
	setting, err := u.Get(ctx, raw)
	if err != nil {
		return domain.Setting{}, err
	}
	if err := u.store.DeleteSetting(setting.Key); err != nil {
		return domain.Setting{}, err
	}
	u.catalog.Remove(domain.KindSetting, setting.Key)
	return setting, nil
}
