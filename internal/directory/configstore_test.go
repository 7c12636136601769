package directory

import (
	"sync"
	"testing"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
)

func TestConfigStore_EmptyUntilLoaded(t *testing.T) {
	store := NewConfigStore()

	if store.Enabled() {
		t.Error("expected fresh store to be disabled")
	}
	if _, ok := store.Snapshot(); ok {
		t.Error("expected no snapshot from a fresh store")
	}
}

func TestConfigStore_LoadAndSnapshot(t *testing.T) {
	store := NewConfigStore()
	store.Load(models.DirectoryConfig{ID: 1, ServerURL: "ldap://dc01:389", Active: true})

	cfg, ok := store.Snapshot()
	if !ok {
		t.Fatal("expected a snapshot after Load")
	}
	if cfg.ServerURL != "ldap://dc01:389" {
		t.Errorf("unexpected server url %q", cfg.ServerURL)
	}
	if !store.Enabled() {
		t.Error("expected store with active config to be enabled")
	}
}

func TestConfigStore_InactiveConfigDisables(t *testing.T) {
	store := NewConfigStore()
	store.Load(models.DirectoryConfig{ID: 1, Active: false})

	if store.Enabled() {
		t.Error("expected inactive config to leave the store disabled")
	}
	if _, ok := store.Snapshot(); !ok {
		t.Error("snapshot must still be available for inactive configs")
	}
}

func TestConfigStore_Clear(t *testing.T) {
	store := NewConfigStore()
	store.Load(models.DirectoryConfig{ID: 1, Active: true})
	store.Clear()

	if store.Enabled() {
		t.Error("expected cleared store to be disabled")
	}
}

func TestConfigStore_SnapshotIsACopy(t *testing.T) {
	store := NewConfigStore()
	store.Load(models.DirectoryConfig{ID: 1, ServerURL: "ldap://old:389", Active: true})

	cfg, _ := store.Snapshot()
	cfg.ServerURL = "ldap://mutated:389"

	again, _ := store.Snapshot()
	if again.ServerURL != "ldap://old:389" {
		t.Error("mutating a snapshot must not affect the store")
	}
}

func TestConfigStore_ConcurrentSwapAndRead(t *testing.T) {
	store := NewConfigStore()
	store.Load(models.DirectoryConfig{ID: 1, ServerURL: "ldap://a:389", Active: true})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Load(models.DirectoryConfig{ID: 2, ServerURL: "ldap://b:389", Active: true})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cfg, ok := store.Snapshot()
				if ok && cfg.ServerURL != "ldap://a:389" && cfg.ServerURL != "ldap://b:389" {
					t.Errorf("torn read: %+v", cfg)
					return
				}
			}
		}()
	}
	wg.Wait()
}
