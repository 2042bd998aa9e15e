package sqlinline

const QSelectIndividualByID = `--sql 7f27dd81-9da7-418d-9b2c-15e2e298c993
select id, first_name, last_name, coalesce(zip, ''), updated_ts,
       coalesce(role, ''), coalesce(title, ''), coalesce(twitter, '')
from individuals
where id = $1::text;
`

const QListIndividualAssociations = `--sql 65d4d371-12ce-4e16-9bf6-99fce38c1443
select a.id, a.description
from associations a
join individual_associations ia on ia.association_id = a.id
where ia.individual_id = $1::text
order by a.description;
`

// QSearchIndividuals expects $1 to be escaped for LIKE.
const QSearchIndividuals = `--sql b16e51f8-4ed4-4d58-972b-7dc815a1b32e
select id, first_name, last_name
from individuals
where cfb_name ilike '%' || $1::text || '%'
   or first_name ilike '%' || $1::text || '%'
   or last_name ilike '%' || $1::text || '%'
order by last_name, first_name, id
limit $2::int;
`

const QListIndividualsByCategory = `--sql 23630393-bf6f-4bd3-9d2f-323b93dda36b
select distinct i.id, i.first_name, i.last_name
from individuals i
join individual_associations ia on ia.individual_id = i.id
join associations a on a.id = ia.association_id
where a.category_id = $1::text
order by i.last_name, i.first_name, i.id;
`

const QListIndividualsByAssociation = `--sql a7f590ac-ecd5-47d0-b60e-0575d2e61a13
select i.id, i.first_name, i.last_name
from individuals i
join individual_associations ia on ia.individual_id = i.id
where ia.association_id = $1::text
order by i.last_name, i.first_name, i.id;
`
