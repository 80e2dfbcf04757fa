package content

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLibraryLookups(t *testing.T) {
	lib := DefaultLibrary()

	card, ok := lib.Card("fireball")
	if !ok || card.Type != CardTypeSpell || card.Cost != 3 {
		t.Fatalf("fireball lookup wrong: %+v %v", card, ok)
	}
	if _, ok := lib.Card("noSuchCard"); ok {
		t.Fatalf("unknown card id must miss")
	}

	champ, ok := lib.Champion("Warrior")
	if !ok || champ.Power != 5 || champ.StartingHP != 20 {
		t.Fatalf("warrior lookup wrong: %+v %v", champ, ok)
	}
}

func TestDefaultLibraryResponseCards(t *testing.T) {
	lib := DefaultLibrary()
	triggers := make(map[Trigger]bool)
	for _, id := range lib.CardIDs() {
		card, _ := lib.Card(id)
		if card.Type == CardTypeResponse {
			if card.Trigger == "" {
				t.Fatalf("response card %s has no trigger", id)
			}
			triggers[card.Trigger] = true
		}
	}
	for _, tr := range []Trigger{TriggerBeforeDamage, TriggerAfterDamage, TriggerOnMove, TriggerStartTurn, TriggerEndTurn} {
		if !triggers[tr] {
			t.Fatalf("no response card for trigger %s", tr)
		}
	}
}

func TestLoadLibraryRoundTrip(t *testing.T) {
	file := libraryFile{
		Cards: []Card{{
			ID: "bolt", Name: "Bolt", Type: CardTypeSpell, Cost: 1,
			Target:  TargetEnemy,
			Effects: []Effect{{Type: EffectDamage, Scope: ScopeTarget, Value: Lit(2)}},
		}},
		Champions: []ChampionArchetype{{Name: "Scout", Power: 2, Range: 1, Movement: 4, StartingHP: 12}},
	}
	raw, err := json.Marshal(file)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "content.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	lib, err := LoadLibrary(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	card, ok := lib.Card("bolt")
	if !ok || card.Effects[0].Value.Literal == nil || *card.Effects[0].Value.Literal != 2 {
		t.Fatalf("loaded card wrong: %+v", card)
	}
	if _, ok := lib.Champion("Scout"); !ok {
		t.Fatalf("loaded champion missing")
	}
}

func TestLoadLibraryRejectsEmptyID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"cards":[{"name":"Nameless"}]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadLibrary(path); err == nil {
		t.Fatalf("expected error for card without id")
	}
}
