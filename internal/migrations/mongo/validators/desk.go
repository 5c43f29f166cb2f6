package validators

import "go.mongodb.org/mongo-driver/bson"

var DeskValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"label": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},
		},
	},
}
