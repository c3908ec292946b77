package store

import (
	"fmt"
	"strconv"
	"strings"
)

// collectionKeys maps the dataset's Arabic collection titles to the
// short keys used in record IDs and artifact files.
var collectionKeys = map[string]string{
	"صحيح البخاري":              "bukhari",
	"صحيح مسلم":                 "muslim",
	"سنن أبي داود":              "abudawud",
	"جامع الترمذي":              "tirmidhi",
	"سنن النسائى الصغرى":        "nasai",
	"سنن ابن ماجه":              "ibnmajah",
	"موطأ مالك رواية يحيى الليثي": "malik",
	"مسند أحمد بن حنبل":          "ahmed",
	"سنن الدارمي":               "darimi",
}

// collectionTitles maps short keys to the display titles used when
// prompting the oracle.
var collectionTitles = map[string]string{
	"bukhari":  "صحيح البخاري",
	"muslim":   "صحيح مسلم",
	"abudawud": "سنن أبي داود",
	"tirmidhi": "جامع الترمذي",
	"nasai":    "سنن النسائي",
	"ibnmajah": "سنن ابن ماجه",
	"malik":    "موطأ مالك",
	"ahmed":    "مسند أحمد",
	"darimi":   "سنن الدارمي",
}

// secondarySourceNames maps short keys to the source titles the
// secondary CSV uses, which follow their own transliteration convention.
var secondarySourceNames = map[string]string{
	"bukhari":  "Sahih Bukhari",
	"muslim":   "Sahih Muslim",
	"abudawud": "Sunan Abu Dawud",
	"tirmidhi": "Jami'at Tirmidhi",
	"nasai":    "Sunan an Nasa'i",
	"ibnmajah": "Sunan Ibn Majah",
	"malik":    "Muwatta Malik",
	"ahmed":    "Musnad Ahmad",
	"darimi":   "Sunan al Darmi",
}

// CollectionKey resolves a dataset collection title to its short key.
func CollectionKey(title string) (string, bool) {
	key, ok := collectionKeys[title]
	return key, ok
}

// CollectionTitle returns the display title for a short key, falling
// back to the key itself.
func CollectionTitle(key string) string {
	if t, ok := collectionTitles[key]; ok {
		return t
	}
	return key
}

// SecondarySourceName returns the secondary CSV's source title for a
// short key.
func SecondarySourceName(key string) (string, bool) {
	name, ok := secondarySourceNames[key]
	return name, ok
}

// RecordID builds the stable record identifier for a collection entry.
func RecordID(collection string, number int) string {
	return fmt.Sprintf("%s-%d", collection, number)
}

// ParseRecordID splits a record identifier back into collection key and
// number.
func ParseRecordID(id string) (string, int, bool) {
	i := strings.LastIndex(id, "-")
	if i <= 0 || i == len(id)-1 {
		return "", 0, false
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil {
		return "", 0, false
	}
	return id[:i], n, true
}
