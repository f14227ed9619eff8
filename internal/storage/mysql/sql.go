package mysql

const upsertPlaceSQL = `
INSERT INTO places
  (normalized_key, name, description, type, category, address, phone, email,
   website, lat, lng, rating, visitor_count, opening_hours, entrance_fee,
   accessibility, best_time, visit_duration, highlights, facilities,
   special_features, seasonal_info, photography_allowed, social_media,
   ai_sentiment, ai_categories, weather_suitability, data_sources,
   verified_source, last_updated_at, web_scraped)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name                = VALUES(name),
  description         = VALUES(description),
  type                = VALUES(type),
  category            = VALUES(category),
  address             = VALUES(address),
  phone               = VALUES(phone),
  email               = VALUES(email),
  website             = VALUES(website),
  lat                 = VALUES(lat),
  lng                 = VALUES(lng),
  rating              = VALUES(rating),
  visitor_count       = VALUES(visitor_count),
  opening_hours       = VALUES(opening_hours),
  entrance_fee        = VALUES(entrance_fee),
  accessibility       = VALUES(accessibility),
  best_time           = VALUES(best_time),
  visit_duration      = VALUES(visit_duration),
  highlights          = VALUES(highlights),
  facilities          = VALUES(facilities),
  special_features    = VALUES(special_features),
  seasonal_info       = VALUES(seasonal_info),
  photography_allowed = VALUES(photography_allowed),
  social_media        = VALUES(social_media),
  ai_sentiment        = VALUES(ai_sentiment),
  ai_categories       = VALUES(ai_categories),
  weather_suitability = VALUES(weather_suitability),
  data_sources        = VALUES(data_sources),
  verified_source     = VALUES(verified_source),
  last_updated_at     = VALUES(last_updated_at),
  web_scraped         = VALUES(web_scraped),
  updated_at          = CURRENT_TIMESTAMP
`

const placeColumnsSQL = `
  normalized_key, name, description, type, category, address, phone, email,
  website, lat, lng, rating, visitor_count, opening_hours, entrance_fee,
  accessibility, best_time, visit_duration, highlights, facilities,
  special_features, seasonal_info, photography_allowed, social_media,
  ai_sentiment, ai_categories, weather_suitability, data_sources,
  verified_source, last_updated_at, web_scraped
`

const getPlaceSQL = `SELECT` + placeColumnsSQL + `FROM places WHERE normalized_key = ?`

const listPlacesSQL = `SELECT` + placeColumnsSQL + `FROM places WHERE (? = '' OR type = ?) ORDER BY name LIMIT ?`
