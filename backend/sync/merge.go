package sync

import (
	"fmt"

	"github.com/mhasan/lifeos/backend/models"
	"go.mongodb.org/mongo-driver/bson"
)

// MergeWithDefaults decodes a remote life data document on top of the
// default aggregate. Fields absent from the document keep their default
// values, so documents written by older versions of the app remain loadable
// as new sections are added.
func MergeWithDefaults(raw bson.Raw) (models.AppData, error) {
	data := models.DefaultData()
	if err := bson.Unmarshal(raw, &data); err != nil {
		return models.AppData{}, fmt.Errorf("error decoding life data document: %v", err)
	}

	// Older documents predate the azkar and tasbih sections and store
	// them as empty arrays. Fall back to the built-in sets so the user
	// is not left with a blank dhikr tab.
	if len(data.Islam.DailyAzkar) == 0 {
		data.Islam.DailyAzkar = models.DefaultAzkar()
	}
	if len(data.Islam.Tasbihs) == 0 {
		data.Islam.Tasbihs = models.DefaultTasbihs()
	}
	return data, nil
}
