package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	appmodels "cityagent/models"
)

// ProjectDocument is the persisted shape of a planning project. Projects
// are addressed by the integer ProjectID, not the Mongo object id.
type ProjectDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ProjectID       int                `bson:"project_id"`
	OwnerID         string             `bson:"owner_id,omitempty"`
	Name            string             `bson:"name"`
	CityType        string             `bson:"city_type,omitempty"`
	Constraints     []string           `bson:"constraints,omitempty"`
	BlueprintWidth  int                `bson:"blueprint_width"`
	BlueprintHeight int                `bson:"blueprint_height"`
	BlueprintUnit   string             `bson:"blueprint_unit,omitempty"`
	// CityData is kept as a raw JSON string; consumers must treat
	// malformed content as an empty city, never as a hard error.
	CityData  string    `bson:"city_data,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// ToModel converts the document to the domain Project.
func (d ProjectDocument) ToModel() *appmodels.Project {
	return &appmodels.Project{
		ID:          d.ProjectID,
		Name:        d.Name,
		OwnerID:     d.OwnerID,
		CityType:    d.CityType,
		Constraints: d.Constraints,
		Blueprint: appmodels.Blueprint{
			Width:  d.BlueprintWidth,
			Height: d.BlueprintHeight,
			Unit:   d.BlueprintUnit,
		},
		CityData: d.CityData,
	}
}
