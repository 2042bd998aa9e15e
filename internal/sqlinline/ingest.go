package sqlinline

const QSelectIndividualByName = `--sql 9acc0235-8dbc-43f1-a8c9-4d0fce00b79e
select id
from individuals
where first_name = $1::text and last_name = $2::text;
`

const QInsertIndividual = `--sql 414099b3-1589-4e3e-9e70-069ab58eb973
insert into individuals (first_name, last_name, cfb_name, role, updated_ts)
values ($1::text, $2::text, $3::text, nullif($4::text, ''), now())
returning id;
`

const QUpsertAssociation = `--sql bbe282b0-b4de-4d28-aa28-410cdd32bdb5
insert into associations (description)
values ($1::text)
on conflict (description) do update set description = excluded.description
returning id;
`

const QLinkIndividualAssociation = `--sql 5d58d8bf-84ca-4c01-8e2c-e611db02e9dc
insert into individual_associations (individual_id, association_id, updated_ts)
values ($1::text, $2::text, now())
on conflict (individual_id, association_id) do update set updated_ts = now();
`

const QUpsertCategory = `--sql 57ca7c6a-6644-4b75-acc0-c02adca9ac59
insert into categories (description)
values ($1::text)
on conflict (description) do update set description = excluded.description
returning id;
`

const QAssignAssociationCategory = `--sql d07e2c7d-a0da-4db2-9501-c04b00111d32
update associations
set category_id = $1::text
where description = $2::text;
`

const QListCFBNames = `--sql 9381364a-3726-42bd-9bdd-dc7dcd16dabc
select id, cfb_name
from individuals
where cfb_name is not null and cfb_name <> '';
`

const QCreateContributionStaging = `--sql 5ca322ab-06b6-4f18-ac64-42763f10f834
create temp table contributions_staging
  (like contributions including defaults)
  on commit drop;
`

const QMergeContributionStaging = `--sql c8fcecf0-e3ee-40cc-a069-e76b13975da6
insert into contributions (
  refno, amount, date, contributor_name, recipient_name, recipient_id,
  cfb_recipient_id, election, office_cd, can_class, committee, filing,
  schedule, c_code, borough, city, state, zip, occupation, employer_name
)
select distinct on (refno)
  refno, amount, date, contributor_name, recipient_name, nullif(recipient_id, ''),
  cfb_recipient_id, election, office_cd, can_class, committee, filing,
  schedule, c_code, borough, city, state, zip, occupation, employer_name
from contributions_staging
order by refno
on conflict (refno) do nothing;
`
