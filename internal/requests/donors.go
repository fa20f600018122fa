package requests

import (
	"context"

	"medisecure/internal/cache"
	"medisecure/internal/model"
	"medisecure/internal/store"
)

func donorsKey(bloodGroup string) string {
	if bloodGroup == "" {
		return "donors:all"
	}
	return "donors:" + bloodGroup
}

// Donors 捐血者清單，先查 Redis 再查資料庫；快取錯誤只記錄
func (m *Manager) Donors(ctx context.Context, bloodGroup string) ([]model.DonorListing, error) {
	cacheable := m.donorTTL > 0 && (bloodGroup == "" || model.ValidBloodGroup(bloodGroup))
	key := donorsKey(bloodGroup)
	log := m.logger.WithField("key", key)

	if cacheable {
		var donors []model.DonorListing
		hit, err := cache.GetJSON(ctx, m.cache, key, &donors)
		if err != nil {
			log.WithError(err).Warn("donor cache read failed")
		} else if hit {
			return donors, nil
		}
	}

	donors, err := store.ListDonors(ctx, m.db, bloodGroup)
	if err != nil {
		return nil, err
	}
	if cacheable {
		if err := cache.SetJSON(ctx, m.cache, key, donors, m.donorTTL); err != nil {
			log.WithError(err).Warn("donor cache write failed")
		}
	}
	return donors, nil
}

// InvalidateDonors drops every cached listing. Called after a donor signs up
// or edits the profile.
func (m *Manager) InvalidateDonors(ctx context.Context) {
	if m.donorTTL <= 0 {
		return
	}
	keys := []string{donorsKey("")}
	for _, g := range model.BloodGroups {
		keys = append(keys, donorsKey(g))
	}
	if err := m.cache.Del(ctx, keys...).Err(); err != nil {
		m.logger.WithError(err).Warn("donor cache invalidation failed")
	}
}
