package validators

import "go.mongodb.org/mongo-driver/bson"

var DateOverrideValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"location_id",
			"start_date",
			"end_date",
			"is_closed",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"location_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			// Zero-padded ISO dates so lexicographic order is date order.
			"start_date": bson.M{
				"bsonType": "string",
				"pattern":  "^\\d{4}-\\d{2}-\\d{2}$",
			},

			"end_date": bson.M{
				"bsonType": "string",
				"pattern":  "^\\d{4}-\\d{2}-\\d{2}$",
			},

			"is_closed": bson.M{
				"bsonType": "bool",
			},

			"reason": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"windows": bson.M{
				"bsonType": "array",
				"items":    windowSchema,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
