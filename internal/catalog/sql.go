package catalog

// PostgreSQL text for every catalog entry. Ties on the ordering metric are
// broken by ascending group key so results are deterministic; the in-memory
// evaluators follow the same rule.

const ageGroupCase = `CASE
        WHEN driver_age IS NULL THEN 'Unknown'
        WHEN driver_age < 25 THEN 'Under 25'
        WHEN driver_age <= 40 THEN '25-40'
        ELSE 'Over 40'
    END`

const sqlTopDrugVehicles = `
SELECT vehicle_number, COUNT(*) AS stop_count
FROM traffic_logs
WHERE drugs_related_stop = TRUE
GROUP BY vehicle_number
ORDER BY stop_count DESC, vehicle_number
LIMIT 10;
`

const sqlMostSearchedVehicles = `
SELECT vehicle_number, COUNT(*) AS search_count
FROM traffic_logs
WHERE search_conducted = TRUE
GROUP BY vehicle_number
ORDER BY search_count DESC, vehicle_number
LIMIT 10;
`

const sqlAgeGroupArrestRate = `
SELECT
    ` + ageGroupCase + ` AS age_group,
    ROUND(AVG(CASE WHEN is_arrested = TRUE THEN 1 ELSE 0 END) * 100, 2) AS arrest_rate_percentage
FROM traffic_logs
GROUP BY age_group
ORDER BY arrest_rate_percentage DESC, age_group
LIMIT 1;
`

const sqlGenderByCountry = `
SELECT
    country_name,
    driver_gender,
    COUNT(*) AS total_count
FROM traffic_logs
GROUP BY country_name, driver_gender
ORDER BY country_name, total_count DESC, driver_gender;
`

const sqlGenderSearchRate = `
SELECT
    driver_gender,
    ROUND(AVG(CASE WHEN search_conducted = TRUE THEN 1 ELSE 0 END) * 100, 2) AS search_rate_percentage
FROM traffic_logs
GROUP BY driver_gender
ORDER BY search_rate_percentage DESC, driver_gender
LIMIT 2;
`

const sqlBusiestHour = `
SELECT
    EXTRACT(HOUR FROM stop_datetime)::int AS hour_of_day,
    COUNT(*) AS stop_count
FROM traffic_logs
WHERE stop_datetime IS NOT NULL
GROUP BY hour_of_day
ORDER BY stop_count DESC, hour_of_day
LIMIT 1;
`

const sqlAvgDurationByViolation = `
SELECT
    violation,
    ROUND(AVG(duration_minutes)::numeric, 2) AS avg_stop_minutes
FROM (
    SELECT
        violation,
        CASE
            WHEN btrim(stop_duration) ~ '^[0-9]+-[0-9]+' THEN
                (
                    CAST(substring(btrim(stop_duration) FROM '^([0-9]+)-') AS FLOAT) +
                    CAST(substring(btrim(stop_duration) FROM '^[0-9]+-([0-9]+)') AS FLOAT)
                ) / 2
            WHEN btrim(stop_duration) ~ '^[0-9]+' THEN
                CAST(substring(btrim(stop_duration) FROM '^[0-9]+') AS FLOAT)
            ELSE NULL
        END AS duration_minutes
    FROM traffic_logs
    WHERE stop_duration IS NOT NULL
) AS parsed
WHERE duration_minutes IS NOT NULL
GROUP BY violation
ORDER BY avg_stop_minutes DESC, violation;
`

const sqlNightArrestRate = `
SELECT
    CASE
        WHEN EXTRACT(HOUR FROM stop_datetime) >= 20 OR EXTRACT(HOUR FROM stop_datetime) < 6
        THEN 'Night'
        ELSE 'Day'
    END AS time_of_day,
    ROUND(AVG(CASE WHEN is_arrested = TRUE THEN 1 ELSE 0 END) * 100, 2) AS arrest_rate_percentage,
    COUNT(*) AS total_stops
FROM traffic_logs
WHERE stop_datetime IS NOT NULL
GROUP BY time_of_day
ORDER BY arrest_rate_percentage DESC, time_of_day;
`

const sqlSearchArrestViolations = `
SELECT
    violation,
    ROUND(AVG(CASE WHEN search_conducted = TRUE THEN 1 ELSE 0 END) * 100, 2) AS search_rate,
    ROUND(AVG(CASE WHEN is_arrested = TRUE THEN 1 ELSE 0 END) * 100, 2) AS arrest_rate,
    COUNT(*) AS total_stops
FROM traffic_logs
GROUP BY violation
ORDER BY (
    AVG(CASE WHEN search_conducted = TRUE THEN 1 ELSE 0 END) * 100 +
    AVG(CASE WHEN is_arrested = TRUE THEN 1 ELSE 0 END) * 100
) DESC, violation
LIMIT 10;
`

const sqlYoungDriverViolations = `
SELECT
    violation,
    COUNT(*) AS total_count
FROM traffic_logs
WHERE driver_age < 25
GROUP BY violation
ORDER BY total_count DESC, violation
LIMIT 10;
`

const sqlRarelyEnforcedViolations = `
SELECT
    violation,
    ROUND(AVG(CASE WHEN search_conducted = TRUE THEN 1 ELSE 0 END) * 100, 2) AS search_rate,
    ROUND(AVG(CASE WHEN is_arrested = TRUE THEN 1 ELSE 0 END) * 100, 2) AS arrest_rate,
    COUNT(*) AS total_stops
FROM traffic_logs
GROUP BY violation
ORDER BY (
    AVG(CASE WHEN search_conducted = TRUE THEN 1 ELSE 0 END) * 100 +
    AVG(CASE WHEN is_arrested = TRUE THEN 1 ELSE 0 END) * 100
) ASC, violation
LIMIT 10;
`

const sqlCountryDrugRate = `
SELECT
    country_name,
    ROUND(AVG(CASE WHEN drugs_related_stop = TRUE THEN 1 ELSE 0 END) * 100, 2) AS drug_related_rate,
    COUNT(*) AS total_stops
FROM traffic_logs
GROUP BY country_name
ORDER BY drug_related_rate DESC, country_name
LIMIT 10;
`

const sqlCountryViolationArrestRate = `
SELECT
    country_name,
    violation,
    ROUND(AVG(CASE WHEN is_arrested = TRUE THEN 1 ELSE 0 END) * 100, 2) AS arrest_rate,
    COUNT(*) AS total_stops
FROM traffic_logs
GROUP BY country_name, violation
ORDER BY arrest_rate DESC, country_name, violation
LIMIT 10;
`

const sqlCountrySearches = `
SELECT
    country_name,
    COUNT(*) AS total_searches
FROM traffic_logs
WHERE search_conducted = TRUE
GROUP BY country_name
ORDER BY total_searches DESC, country_name
LIMIT 5;
`

const sqlYearlyCountryBreakdown = `
WITH yearly_data AS (
    SELECT
        country_name,
        EXTRACT(YEAR FROM stop_datetime)::int AS year,
        COUNT(*) AS total_stops,
        SUM(CASE WHEN is_arrested = TRUE THEN 1 ELSE 0 END) AS total_arrests
    FROM traffic_logs
    WHERE stop_datetime IS NOT NULL
    GROUP BY 1, 2
)
SELECT
    country_name,
    year,
    total_stops,
    total_arrests,
    ROUND((total_arrests::DECIMAL / total_stops) * 100, 2) AS arrest_rate_percentage,
    RANK() OVER (PARTITION BY year ORDER BY total_stops DESC) AS rank_by_year
FROM yearly_data
ORDER BY year, rank_by_year, country_name;
`

const sqlAgeCountryViolationTrends = `
WITH age_groups AS (
    SELECT
        ` + ageGroupCase + ` AS age_group,
        country_name,
        violation,
        COUNT(*) AS total_count
    FROM traffic_logs
    GROUP BY 1, 2, 3
)
SELECT
    age_group,
    country_name,
    violation,
    total_count,
    RANK() OVER (PARTITION BY age_group, country_name ORDER BY total_count DESC) AS rank_in_group
FROM age_groups
ORDER BY age_group, country_name, rank_in_group, violation
LIMIT 20;
`

const sqlTimePeriodAnalysis = `
SELECT
    EXTRACT(YEAR FROM stop_datetime)::int AS year,
    EXTRACT(MONTH FROM stop_datetime)::int AS month,
    EXTRACT(HOUR FROM stop_datetime)::int AS hour,
    COUNT(*) AS total_stops
FROM traffic_logs
WHERE stop_datetime IS NOT NULL
GROUP BY 1, 2, 3
ORDER BY year, month, hour;
`

const sqlRankedSearchArrestViolations = `
WITH stats AS (
    SELECT
        violation,
        ROUND(AVG(CASE WHEN search_conducted = TRUE THEN 1 ELSE 0 END) * 100, 2) AS search_rate,
        ROUND(AVG(CASE WHEN is_arrested = TRUE THEN 1 ELSE 0 END) * 100, 2) AS arrest_rate
    FROM traffic_logs
    GROUP BY violation
),
ranked AS (
    SELECT
        violation,
        search_rate,
        arrest_rate,
        (search_rate + arrest_rate) AS combined_rate,
        RANK() OVER (ORDER BY (search_rate + arrest_rate) DESC) AS rate_rank
    FROM stats
)
SELECT *
FROM ranked
ORDER BY rate_rank, violation
LIMIT 10;
`

const sqlCountryDemographics = `
WITH age_groups AS (
    SELECT
        country_name,
        ` + ageGroupCase + ` AS age_group,
        driver_gender,
        COUNT(*) AS total_count
    FROM traffic_logs
    GROUP BY 1, 2, 3
)
SELECT
    country_name,
    age_group,
    driver_gender,
    total_count,
    ROUND(100.0 * total_count / SUM(total_count) OVER (PARTITION BY country_name), 2) AS percentage_in_country
FROM age_groups
ORDER BY country_name, age_group, driver_gender;
`

const sqlTopArrestViolations = `
SELECT
    violation,
    ROUND(AVG(CASE WHEN is_arrested = TRUE THEN 1 ELSE 0 END) * 100, 2) AS arrest_rate,
    COUNT(*) AS total_stops
FROM traffic_logs
GROUP BY violation
ORDER BY arrest_rate DESC, violation
LIMIT 5;
`
