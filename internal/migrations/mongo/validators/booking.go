package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"resource_id",
			"location_id",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"timezone",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"resource_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"location_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"start_time": bson.M{
				"bsonType": "date",
			},

			"end_time": bson.M{
				"bsonType": "date",
			},

			"duration_minutes": bson.M{
				"bsonType": "int",
				"minimum":  5,
				"maximum":  480,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"in_progress",
					"completed",
					"cancelled",
					"no_show",
				},
			},

			"timezone": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"patient": bson.M{
				"bsonType": "object",
				"required": []string{"name"},
				"properties": bson.M{
					"name": bson.M{
						"bsonType":  "string",
						"minLength": 2,
						"maxLength": 100,
					},
					"phone": bson.M{
						"bsonType": "string",
						"pattern":  "^\\+[1-9]\\d{7,14}$",
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
