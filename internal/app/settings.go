package app

import (
	"sync"
	"time"

	"github.com/kanditextile/kandipos/internal/domain"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const settingsCacheTTL = 30 * time.Second

// ConfigManager reads sys_config rows with a short-lived in-process cache.
// Values are stored as strings and converted on access.
type ConfigManager struct {
	app      *Application
	mu       sync.RWMutex
	cache    map[string]string
	loadedAt time.Time
}

func NewConfigManager(app *Application) *ConfigManager {
	return &ConfigManager{app: app, cache: make(map[string]string)}
}

func (m *ConfigManager) reloadLocked() {
	var rows []domain.SysConfig
	if err := m.app.gormDB.Find(&rows).Error; err != nil {
		zap.L().Error("failed to load settings", zap.Error(err))
		return
	}
	cache := make(map[string]string, len(rows))
	for _, row := range rows {
		cache[row.Type+"."+row.Name] = row.Value
	}
	m.cache = cache
	m.loadedAt = time.Now()
}

func (m *ConfigManager) get(category, name string) string {
	m.mu.RLock()
	fresh := time.Since(m.loadedAt) < settingsCacheTTL
	val, ok := m.cache[category+"."+name]
	m.mu.RUnlock()
	if fresh && ok {
		return val
	}

	m.mu.Lock()
	if time.Since(m.loadedAt) >= settingsCacheTTL {
		m.reloadLocked()
	}
	val = m.cache[category+"."+name]
	m.mu.Unlock()
	return val
}

func (m *ConfigManager) GetString(category, name string) string {
	return m.get(category, name)
}

func (m *ConfigManager) GetInt(category, name string) int {
	return cast.ToInt(m.get(category, name))
}

func (m *ConfigManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.get(category, name))
}

func (m *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(m.get(category, name))
}

// SetValue updates or creates a setting and invalidates the cache.
func (m *ConfigManager) SetValue(category, name, value string) error {
	var count int64
	m.app.gormDB.Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", category, name).Count(&count)

	var err error
	if count == 0 {
		err = m.app.gormDB.Create(&domain.SysConfig{
			Type: category, Name: name, Value: value,
		}).Error
	} else {
		err = m.app.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Update("value", value).Error
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.loadedAt = time.Time{}
	m.mu.Unlock()
	return nil
}
