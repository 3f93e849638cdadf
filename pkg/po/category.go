package po

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/Holastor/AION-2-Localization/pkg/interchange"
)

// CategoryPrefixes are key prefixes that form a category on their own
// instead of the first three key parts.
var CategoryPrefixes = []string{
	"SkillString_STR_SKILL_PC_ASSASSIN", "SkillString_STR_SKILL_PC_CHANTER",
	"SkillString_STR_SKILL_PC_CLERIC", "SkillString_STR_SKILL_PC_ELEMENTALIST",
	"SkillString_STR_SKILL_PC_GLADIATOR", "SkillString_STR_SKILL_PC_RANGER",
	"SkillString_STR_SKILL_PC_SORCERER", "SkillString_STR_SKILL_PC_TEMPLAR",
	"SkillAbnormalString", "SkillCondString", "SkillString",
	"AchievementString", "AnonymousNameData", "CurrencyInfo", "CutsceneSubtitle",
	"EnvObjData", "EventContentsString", "GatherSkill", "NpcTalk",
	"GuideData", "InputKeyMapping", "InputKeyText", "InventoryFilter",
	"NoteData", "PackageList", "Post", "QuestPart", "QuestString", "ServerName",
	"SkinMaterial", "SkinSet", "String_AttrStatName", "String_StatName",
	"String_STR", "String_UI", "TeleportArtifact", "TitleCategory",
	"Message", "PcSocialAction", "Tag", "Title", "TradeTab", "Wing", "Skin", "String",
}

// Categorizer assigns keys to categories
type Categorizer struct {
	separator string
	pattern   *regexp.Regexp
}

// NewCategorizer builds a categorizer for keys split by separator. The
// longest matching prefix wins.
func NewCategorizer(separator string) *Categorizer {
	prefixes := append([]string(nil), CategoryPrefixes...)
	sort.SliceStable(prefixes, func(i, j int) bool {
		return len(prefixes[i]) > len(prefixes[j])
	})

	quoted := make([]string, len(prefixes))
	for i, p := range prefixes {
		quoted[i] = regexp.QuoteMeta(p)
	}
	expr := "^(" + strings.Join(quoted, "|") + ")(?:" + regexp.QuoteMeta(separator) + "|$)"

	return &Categorizer{
		separator: separator,
		pattern:   regexp.MustCompile(expr),
	}
}

// Category returns the category of key
func (c *Categorizer) Category(key string) string {
	if m := c.pattern.FindStringSubmatch(key); m != nil {
		return m[1]
	}
	if c.separator != "" {
		parts := strings.Split(key, c.separator)
		if len(parts) >= 3 {
			return strings.Join(parts[:3], c.separator)
		}
	}
	return "UNCATEGORIZED_" + key
}

// Categories groups entries by category in order of first appearance
type Categories struct {
	Names  []string
	Groups map[string][]interchange.Entry
}

// Categorize groups entries by the category of their key
func Categorize(entries []interchange.Entry, separator string) Categories {
	c := NewCategorizer(separator)
	cats := Categories{Groups: make(map[string][]interchange.Entry)}
	for _, e := range entries {
		name := c.Category(e.Key)
		if _, ok := cats.Groups[name]; !ok {
			cats.Names = append(cats.Names, name)
		}
		cats.Groups[name] = append(cats.Groups[name], e)
	}
	return cats
}

// ExportCategories writes one <category>.po file per category into dir and
// returns the number of files and messages written.
func ExportCategories(dir string, entries []interchange.Entry, separator string) (files, messages int, err error) {
	cats := Categorize(entries, separator)
	for _, name := range cats.Names {
		f := Export(cats.Groups[name])
		path := filepath.Join(dir, fileName(name)+".po")
		if err := WriteFile(path, f); err != nil {
			return files, messages, fmt.Errorf("failed to export category %s: %w", name, err)
		}
		files++
		messages += len(f.Messages)
	}
	return files, messages, nil
}

var unsafeName = strings.NewReplacer("/", "_", "\\", "_", ":", "_")

func fileName(category string) string {
	return unsafeName.Replace(category)
}
