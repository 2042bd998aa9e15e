package sqlinline

const QListCategories = `--sql ec1359cd-19cf-4cfd-b442-707e80d205a8
select id, description
from categories
order by description;
`

const QListCategoryAssociations = `--sql c6980bd7-a317-4a34-95fe-c0150bb5f333
select id, description
from associations
where category_id = $1::text
order by description;
`
