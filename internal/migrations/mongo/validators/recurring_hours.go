package validators

import "go.mongodb.org/mongo-driver/bson"

var windowSchema = bson.M{
	"bsonType": "object",
	"required": []string{"start_local", "end_local", "is_active"},
	"properties": bson.M{
		"id": bson.M{
			"bsonType": "string",
		},
		"start_local": bson.M{
			"bsonType": "string",
			"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9]$",
		},
		"end_local": bson.M{
			"bsonType": "string",
			"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9]$",
		},
		"is_active": bson.M{
			"bsonType": "bool",
		},
	},
}

var RecurringHoursValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"location_id",
			"weekday",
			"is_active",
			"windows",
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

			"weekday": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Sunday",
					"Monday",
					"Tuesday",
					"Wednesday",
					"Thursday",
					"Friday",
					"Saturday",
				},
			},

			"is_active": bson.M{
				"bsonType": "bool",
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
